// SPDX-License-Identifier: MIT

package core

const opDataset = "Dataset"

// Dataset is an ordered, immutable collection of structures.
// Insertion order defines the row/column order of every derived matrix.
type Dataset struct {
	graphs []*Graph
}

// NewDataset wraps already-built graphs. A nil entry is a MalformedStructure
// error tagged with its index.
func NewDataset(graphs ...*Graph) (*Dataset, error) {
	for i, g := range graphs {
		if g == nil {
			return nil, AtIndex(Errorf(KindMalformedStructure, opDataset, "nil structure"), i)
		}
	}

	return &Dataset{graphs: append([]*Graph(nil), graphs...)}, nil
}

// BuildDataset builds every builder in order and fails fast on the first
// invalid structure, tagging the error with its index. Builders with a
// root set through Root are built as trees.
func BuildDataset(builders ...*Builder) (*Dataset, error) {
	graphs := make([]*Graph, len(builders))
	for i, b := range builders {
		if b == nil {
			return nil, AtIndex(Errorf(KindMalformedStructure, opDataset, "nil builder"), i)
		}
		g, err := b.finish()
		if err != nil {
			return nil, AtIndex(err, i)
		}
		graphs[i] = g
	}

	return &Dataset{graphs: graphs}, nil
}

// Len returns the number of structures.
func (d *Dataset) Len() int { return len(d.graphs) }

// At returns structure i.
func (d *Dataset) At(i int) *Graph { return d.graphs[i] }

// Graphs returns a copy of the structure slice.
func (d *Dataset) Graphs() []*Graph { return append([]*Graph(nil), d.graphs...) }

// AllTrees reports whether every structure carries a Tree view.
func (d *Dataset) AllTrees() bool {
	for _, g := range d.graphs {
		if !g.IsTree() {
			return false
		}
	}

	return true
}
