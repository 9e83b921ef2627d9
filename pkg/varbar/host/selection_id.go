package host

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/ukaji3/varbar-go/pkg/varbar/models"
)

var selectionNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("varbar.selection"))

type selectionIDBuilder struct {
	column models.Column
	index  int
	set    bool
}

// NewSelectionIDBuilder returns a builder producing deterministic ids.
func NewSelectionIDBuilder() SelectionIDBuilder {
	return &selectionIDBuilder{}
}

func (b *selectionIDBuilder) WithCategory(column models.Column, index int) SelectionIDBuilder {
	return &selectionIDBuilder{column: column, index: index, set: true}
}

// CreateSelectionID hashes the column reference, row index and category
// value, so the same row yields the same id across updates.
func (b *selectionIDBuilder) CreateSelectionID() models.SelectionID {
	if !b.set {
		return models.SelectionID{Index: -1}
	}

	ref := columnRef(b.column)
	var value interface{}
	if b.index >= 0 && b.index < len(b.column.Values) {
		value = b.column.Values[b.index]
	}
	name := fmt.Sprintf("%s\x00%d\x00%v", ref, b.index, value)

	return models.SelectionID{
		Key:    uuid.NewSHA1(selectionNamespace, []byte(name)).String(),
		Column: ref,
		Index:  b.index,
	}
}

func columnRef(c models.Column) string {
	if c.Source.QueryName != "" {
		return c.Source.QueryName
	}
	return c.Source.DisplayName
}
