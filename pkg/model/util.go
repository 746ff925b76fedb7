package model

import (
	"fmt"

	"github.com/grexie/iris/pkg/numeric"
	"gorgonia.org/gorgonia"
)

func argmax(slice []float64) int {
	return numeric.Argmax(slice)
}

func scalarValue(n *gorgonia.Node) (float64, error) {
	v := n.Value()
	if v == nil {
		return 0, fmt.Errorf("node %s has nil value", n.Name())
	}
	switch data := v.Data().(type) {
	case float64:
		return data, nil
	case []float64:
		if len(data) == 1 {
			return data[0], nil
		}
		return 0, fmt.Errorf("node %s is not a scalar: %d values", n.Name(), len(data))
	default:
		return 0, fmt.Errorf("node %s has unexpected value type %T", n.Name(), data)
	}
}
