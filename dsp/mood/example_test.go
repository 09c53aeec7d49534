package mood_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-remix/dsp/mood"
)

func ExampleApply() {
	in := make([]float64, 2*22050)
	for i := range in {
		in[i] = 0.5 * math.Sin(2*math.Pi*440*float64(i)/22050)
	}

	out, err := mood.Apply(in, 22050, "Energetic", mood.WithSeed(1))
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(len(in), len(out))
	// Output:
	// 44100 35280
}

func ExampleRegistry_Names() {
	fmt.Println(mood.DefaultRegistry().Names())
	// Output:
	// [chill energetic happy neutral sad]
}
