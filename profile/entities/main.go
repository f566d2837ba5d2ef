// Allocation profile for the entity lifecycle: repeated create / iterate /
// bulk-destroy churn against a single scene.
//
//	go build -o churn ./profile/entities
//	./churn
//	go tool pprof -http=":8000" -nodefraction=0.001 ./churn mem.pprof
package main

import (
	"github.com/TheBitDrifter/granary"
	"github.com/pkg/profile"
)

type position struct {
	X, Y float64
}

type velocity struct {
	X, Y float64
}

func main() {
	p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	defer p.Stop()

	run(50, 100, 1000)
}

func run(rounds, iterations, entityCount int) {
	for r := 0; r < rounds; r++ {
		schema := granary.Factory.NewSchema()
		pos := granary.FactoryNewComponent[position]()
		vel := granary.FactoryNewComponent[velocity]()
		scene, err := granary.Factory.NewScene(schema, granary.Arch("mover", pos, vel))
		if err != nil {
			panic(err)
		}
		query := granary.Factory.NewQuery()
		node := query.And(pos, vel)

		for i := 0; i < iterations; i++ {
			for e := 0; e < entityCount; e++ {
				if _, err := scene.CreateEntity(0); err != nil {
					panic(err)
				}
			}
			scene.ForEach(node, func(cursor *granary.Cursor) {
				p := pos.GetFromCursor(cursor)
				v := vel.GetFromCursor(cursor)
				p.X += v.X
				p.Y += v.Y
			})
			if err := scene.DestroyEntities(); err != nil {
				panic(err)
			}
		}
	}
}
