// SPDX-License-Identifier: EPL-2.0

package audio

// Transform turns one input frame into one output frame of the same shape.
// Implementations never modify the input frame.
type Transform interface {
	Process(in *Frame) (*Frame, error)
}

// Chain applies its transforms in order. An empty Chain copies the input.
type Chain []Transform

func (c Chain) Process(in *Frame) (*Frame, error) {
	if len(c) == 0 {
		if err := in.Validate(); err != nil {
			return nil, err
		}

		return in.Clone(), nil
	}

	out := in
	for _, t := range c {
		next, err := t.Process(out)
		if err != nil {
			return nil, err
		}
		out = next
	}

	return out, nil
}
