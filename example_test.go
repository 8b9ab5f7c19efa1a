package dla_test

import (
	"bytes"
	"fmt"
	"log"
	"os"

	"github.com/hupe1980/dla"
	"github.com/hupe1980/dla/export"
	"github.com/hupe1980/dla/vec"
)

// Example_grow grows a small planar cluster from a single seed.
func Example_grow() {
	e, err := dla.New2D(dla.WithSeed(42))
	if err != nil {
		log.Fatal(err)
	}

	e.Add(vec.Vec2{}, 0)
	for range 100 {
		e.AddParticle()
	}

	fmt.Println(e.Len())
	// Output: 101
}

// Example_export writes a cluster as CSV.
func Example_export() {
	e, err := dla.New3D()
	if err != nil {
		log.Fatal(err)
	}

	e.Add(vec.Vec3{}, 0)
	e.Add(vec.Vec3{0.5, -1, 2}, 0)

	if err := export.WriteCSV(os.Stdout, e.Records()); err != nil {
		log.Fatal(err)
	}
	// Output:
	// index,parent,x,y,z
	// 0,0,0.0000,0.0000,0.0000
	// 1,0,0.5000,-1.0000,2.0000
}

// Example_snapshot persists and restores an engine.
func Example_snapshot() {
	e, err := dla.New2D(dla.WithSeed(1), dla.WithStubbornness(3))
	if err != nil {
		log.Fatal(err)
	}
	e.Add(vec.Vec2{}, 0)
	e.AddParticle()

	var buf bytes.Buffer
	if err := e.WriteSnapshot(&buf, nil); err != nil {
		log.Fatal(err)
	}

	restored, err := dla.ReadSnapshot[vec.Vec2](&buf)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(restored.Len(), restored.JoinAttempts(0), restored.Config().Stubbornness)
	// Output: 2 3 3
}
