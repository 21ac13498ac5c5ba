package models

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaperNode(t *testing.T) {
	author := "A"
	p := Paper{ID: 7, Name: "X", GroupName: "G", Citations: 5, Author: &author}

	b, err := json.Marshal(p.Node())
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":7,"label":"X","group":"G","value":5,"title":"Author: A <br> Citations: 5"}`, string(b))
}

func TestPaperNodeFieldOrder(t *testing.T) {
	author := "Bob"
	p := Paper{ID: 1, Name: "Paper1", GroupName: "ML", Citations: 10, Author: &author}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	require.NoError(t, enc.Encode(p.Node()))
	assert.Equal(t, `{"id":1,"label":"Paper1","group":"ML","value":10,"title":"Author: Bob <br> Citations: 10"}`+"\n", buf.String())
}

func TestPaperNodeWithoutAuthor(t *testing.T) {
	p := Paper{ID: 3, Name: "Orphan", GroupName: "Misc", Citations: -2}

	n := p.Node()
	assert.Equal(t, "Author: None <br> Citations: -2", n.Title)
	assert.Equal(t, -2, n.Value)
	assert.Equal(t, "", p.AuthorName())
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "paper", Paper{}.TableName())
	assert.Equal(t, "paper_links", PaperLink{}.TableName())
}
