// Package reftabletest provides a small but complete set of reference tables
// for tests in other packages.
package reftabletest

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/notjagan/pokeguide/pkg/reftable"
)

var files = map[string]string{
	"languages": `id,iso639,iso3166,identifier,official,order
1,ja,jp,ja-hrkt,1,1
3,ko,kr,ko,1,4
9,en,us,en,1,7
`,
	"generations": `id,main_region_id,identifier
1,1,generation-i
2,2,generation-ii
3,3,generation-iii
4,4,generation-iv
5,5,generation-v
6,6,generation-vi
7,7,generation-vii
8,8,generation-viii
9,10,generation-ix
`,
	"version_groups": `id,identifier,generation_id,order
1,red-blue,1,1
3,gold-silver,2,4
15,x-y,6,15
17,sun-moon,7,17
20,sword-shield,8,20
25,scarlet-violet,9,25
`,
	"versions": `id,version_group_id,identifier
1,1,red
2,1,blue
4,3,gold
5,3,silver
23,15,x
24,15,y
27,17,sun
28,17,moon
33,20,sword
34,20,shield
40,25,scarlet
41,25,violet
`,
	"types": `id,identifier,generation_id,damage_class_id
1,normal,1,2
2,fighting,1,2
3,flying,1,2
4,poison,1,2
5,ground,1,2
6,rock,1,2
7,bug,1,2
8,ghost,1,2
9,steel,2,2
10,fire,1,3
11,water,1,3
12,grass,1,3
13,electric,1,3
14,psychic,1,3
15,ice,1,3
16,dragon,1,3
17,dark,2,3
18,fairy,6,
`,
	"type_names": `type_id,local_language_id,name
1,3,노말
1,9,Normal
2,3,격투
2,9,Fighting
3,3,비행
3,9,Flying
4,3,독
4,9,Poison
5,3,땅
5,9,Ground
6,3,바위
6,9,Rock
7,3,벌레
7,9,Bug
8,3,고스트
8,9,Ghost
9,3,강철
9,9,Steel
10,3,불꽃
10,9,Fire
11,3,물
11,9,Water
12,3,풀
12,9,Grass
13,3,전기
13,9,Electric
14,3,에스퍼
14,9,Psychic
15,3,얼음
15,9,Ice
16,3,드래곤
16,9,Dragon
17,3,악
17,9,Dark
18,3,페어리
18,9,Fairy
`,
	"pokemon_species": `id,identifier,generation_id,evolves_from_species_id
1,bulbasaur,1,
6,charizard,1,5
25,pikachu,1,172
26,raichu,1,25
172,pichu,2,
658,greninja,6,657
906,sprigatito,9,
`,
	"pokemon": `id,identifier,species_id,height,weight,base_experience,order,is_default
1,bulbasaur,1,7,69,64,1,1
6,charizard,6,17,905,267,7,1
25,pikachu,25,4,60,112,35,1
26,raichu,26,8,300,243,37,1
172,pichu,172,3,20,41,34,1
658,greninja,658,15,400,239,1011,1
906,sprigatito,906,4,41,62,1298,1
10034,charizard-mega-x,6,17,1105,285,8,0
10100,raichu-alola,26,7,210,243,38,0
10196,charizard-gmax,6,280,10000,267,10,0
`,
	"pokemon_species_names": `pokemon_species_id,local_language_id,name,genus
1,3,이상해씨,씨앗포켓몬
1,9,Bulbasaur,Seed Pokémon
6,3,리자몽,화염포켓몬
6,9,Charizard,Flame Pokémon
25,3,피카츄,쥐포켓몬
25,9,Pikachu,Mouse Pokémon
26,3,라이츄,쥐포켓몬
26,9,Raichu,Mouse Pokémon
172,3,피츄,아기쥐포켓몬
172,9,Pichu,Tiny Mouse Pokémon
658,3,개굴닌자,닌자포켓몬
658,9,Greninja,Ninja Pokémon
906,9,Sprigatito,Grass Cat Pokémon
`,
	"pokemon_types": `pokemon_id,type_id,slot
1,4,2
1,12,1
6,10,1
6,3,2
25,13,1
26,13,1
172,13,1
658,11,1
658,17,2
906,12,1
10034,10,1
10034,16,2
10100,13,1
10100,14,2
10196,10,1
10196,3,2
`,
	"pokemon_abilities": `pokemon_id,ability_id,is_hidden,slot
1,34,1,3
1,65,0,1
6,66,0,1
6,94,1,3
25,9,0,1
25,31,1,3
`,
	"moves": `id,identifier,generation_id,type_id,power,pp,accuracy,priority,target_id,damage_class_id
33,tackle,1,1,40,35,100,0,10,2
84,thunder-shock,1,13,40,30,100,0,10,3
85,thunderbolt,1,13,90,15,100,0,10,3
86,thunder-wave,1,13,,20,90,0,10,1
344,volt-tackle,3,13,120,15,100,0,10,2
585,moonblast,6,18,95,15,100,0,10,3
`,
	"move_names": `move_id,local_language_id,name
33,3,몸통박치기
33,9,Tackle
84,3,전기쇼크
84,9,Thunder Shock
85,3,10만볼트
85,9,Thunderbolt
86,3,전기자석파
86,9,Thunder Wave
344,3,볼트태클
344,9,Volt Tackle
585,3,문포스
585,9,Moonblast
`,
	"abilities": `id,identifier,generation_id,is_main_series
9,static,3,1
31,lightning-rod,3,1
34,chlorophyll,3,1
65,overgrow,3,1
66,blaze,3,1
94,solar-power,4,1
10001,mountaineer,4,0
`,
	"ability_names": `ability_id,local_language_id,name
9,3,정전기
9,9,Static
31,3,피뢰침
31,9,Lightning Rod
34,3,엽록소
34,9,Chlorophyll
65,3,심록
65,9,Overgrow
66,3,맹화
66,9,Blaze
94,3,선파워
94,9,Solar Power
`,
	"items": `id,identifier,category_id,cost,fling_power,fling_effect_id
1,master-ball,34,0,,
213,light-ball,12,1000,30,5
328,tm24,37,3000,,
`,
	"item_names": `item_id,local_language_id,name
1,3,마스터볼
1,9,Master Ball
213,3,전기구슬
213,9,Light Ball
328,9,TM24
`,
	"machines": `machine_number,version_group_id,item_id,move_id
24,1,328,85
24,20,328,85
`,
}

// FS returns a fresh in-memory copy of the fixture tables.
func FS() fstest.MapFS {
	fsys := make(fstest.MapFS, len(files))
	for name, content := range files {
		fsys[name+".csv"] = &fstest.MapFile{Data: []byte(content)}
	}
	return fsys
}

func Store() *reftable.Store {
	return reftable.NewStore(reftable.FSSource(FS()), nil)
}

// Tables loads the fixture or fails the test.
func Tables(t testing.TB) *reftable.Tables {
	t.Helper()
	tables, err := Store().Load(context.Background())
	if err != nil {
		t.Fatalf("could not load fixture tables: %v", err)
	}
	return tables
}
