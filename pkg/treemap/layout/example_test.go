package layout

import (
	"fmt"

	"github.com/squaremap/squaremap/pkg/geom"
)

func ExampleLayout() {
	items := []Item{
		{Key: "a", Weight: 6},
		{Key: "b", Weight: 6},
		{Key: "c", Weight: 4},
		{Key: "d", Weight: 3},
		{Key: "e", Weight: 2},
		{Key: "f", Weight: 2},
		{Key: "g", Weight: 1},
	}

	rects, err := Layout(items, geom.Rect{W: 6, H: 4})
	if err != nil {
		fmt.Println(err)
		return
	}

	for _, it := range items {
		r := rects[it.Key]
		fmt.Printf("%s: (%.2f, %.2f) %.2fx%.2f\n", it.Key, r.X, r.Y, r.W, r.H)
	}
	// Output:
	// a: (0.00, 0.00) 3.00x2.00
	// b: (0.00, 2.00) 3.00x2.00
	// c: (3.00, 0.00) 1.71x2.33
	// d: (4.71, 0.00) 1.29x2.33
	// e: (3.00, 2.33) 1.20x1.67
	// f: (4.20, 2.33) 1.20x1.67
	// g: (5.40, 2.33) 0.60x1.67
}
