package directivity_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-array/directivity"
)

func ExampleBroadcast() {
	ps, _ := directivity.Broadcast([]directivity.Pattern{directivity.Cardioid()}, 3)
	for _, p := range ps {
		fmt.Printf("%.2f ", p.Gain(math.Pi/2))
	}
	fmt.Println()
	// Output:
	// 0.50 0.50 0.50
}
