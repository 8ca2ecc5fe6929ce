package neu

import "github.com/arlojansen/imgquant/internal/pixel"

// contest finds the neuron nearest to (al,r,g,b) by raw distance and
// separately by bias-adjusted distance, decaying every neuron's
// frequency and bias once per call regardless of which one wins.
//
// The order here is load-bearing: each neuron's frequency is decayed
// and folded into its bias before the winning neuron's own frequency
// and bias are adjusted at the end of the loop. Reordering either step
// changes every subsequent contest's outcome.
func (n *Network) contest(al, r, g, b uint8) int {
	bestd := float64(int(1) << 30)
	bestBiasd := bestd
	bestPos := 0
	bestBiasPos := 0

	fr, fg, fb, fal := float64(r), float64(g), float64(b), float64(al)

	for i := 0; i < netSize; i++ {
		bestBiasdBiased := bestBiasd + n.bias[i]

		nn := &n.neurons[i]
		a := nn.b - fb
		dist := abs(a)
		a = nn.r - fr
		dist += abs(a)

		if dist < bestd || dist < bestBiasdBiased {
			a = nn.g - fg
			dist += abs(a)
			a = nn.al - fal
			dist += abs(a)

			if dist < bestd {
				bestd = dist
				bestPos = i
			}
			if dist < bestBiasdBiased {
				bestBiasd = dist - n.bias[i]
				bestBiasPos = i
			}
		}

		betaFreq := n.freq[i] / float64(int(1)<<betaShift)
		n.freq[i] -= betaFreq
		n.bias[i] += betaFreq * gammaValue
	}

	n.freq[bestPos] += beta
	n.bias[bestPos] -= betaGamma
	return bestBiasPos
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func (n *Network) initRadPower(rad int, alpha float64) {
	for i := range n.radPower {
		n.radPower[i] = 0
	}
	rr := float64(rad * rad)
	for i := 0; i < rad; i++ {
		fi := float64(i)
		n.radPower[i] = float64(int64(alpha * (((rr - fi*fi) * radiusBias) / rr)))
	}
}

// Learn trains the network over pixels using sampleFac to subsample
// (1 for a full pass, 5 when dithering will follow and a faster train
// is acceptable). Fully transparent pixels are skipped from training
// but still consumed by the sampling stride.
func (n *Network) Learn(pixels []pixel.ARGB, sampleFac int) error {
	lengthCount := len(pixels)
	if lengthCount == 0 || sampleFac < 1 {
		return ErrInvalidArgument
	}

	samplePixels := lengthCount / sampleFac
	delta := samplePixels / ncycles
	if delta == 0 {
		delta = 1
	}
	alphaDec := 30 + (sampleFac-1)/3

	alpha := float64(initAlpha)
	radius := float64(initRadius)
	rad := int(radius)
	if rad <= 1 {
		rad = 0
	}
	n.initRadPower(rad, alpha)

	pos := 0
	stepIndex := 0
	for i := 0; i < samplePixels; i++ {
		c := pixels[pos]
		if al := c.A(); al != 0 {
			fal, fr, fg, fb := float64(al), float64(c.R()), float64(c.G()), float64(c.B())
			j := n.contest(al, c.R(), c.G(), c.B())
			n.alterSingle(alpha, j, fal, fr, fg, fb)
			if rad > 0 {
				n.alterNeigh(rad, j, fal, fr, fg, fb)
			}
		}
		pos += primes[stepIndex%4]
		stepIndex++
		for pos >= lengthCount {
			pos -= lengthCount
		}

		if (i+1)%delta == 0 {
			alpha -= alpha / float64(alphaDec)
			radius -= radius / radiusDec
			rad = int(radius)
			if rad <= 1 {
				rad = 0
			}
			n.initRadPower(rad, alpha)
		}
	}
	return nil
}
