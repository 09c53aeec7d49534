package reverb_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-remix/dsp/effects/reverb"
)

func ExampleApply() {
	in := make([]float64, 22050)
	for i := range in {
		in[i] = 0.5 * math.Sin(2*math.Pi*440*float64(i)/22050)
	}

	out, err := reverb.Apply(in, 22050, 0.3, 0.8, reverb.WithSeed(1))
	if err != nil {
		fmt.Println(err)
		return
	}

	peak := 0.0
	for _, v := range out {
		peak = math.Max(peak, math.Abs(v))
	}

	fmt.Printf("len=%d bounded=%v\n", len(out), peak <= 1)
	// Output:
	// len=22050 bounded=true
}
