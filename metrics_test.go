package main

import (
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"papernet/services"
)

func TestGraphCollectorReportsGraphSize(t *testing.T) {
	_, papers := newTestRouter(t)
	ctx := context.Background()

	a, err := papers.Create(ctx, services.AddPaperCommand{Name: "A", Group: "G"})
	require.NoError(t, err)
	_, err = papers.Create(ctx, services.AddPaperCommand{Name: "B", Group: "G", LinkIDs: []int64{int64(a.ID)}})
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(newGraphCollector(papers, zap.NewNop())))

	expected := `
# HELP paper_links Number of stored paper links.
# TYPE paper_links gauge
paper_links 1
# HELP papers Number of stored papers.
# TYPE papers gauge
papers 2
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "papers", "paper_links"))
}

func TestGraphCollectorEmptyGraph(t *testing.T) {
	_, papers := newTestRouter(t)

	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(newGraphCollector(papers, zap.NewNop())))

	count, err := testutil.GatherAndCount(reg, "papers", "paper_links")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(`
# HELP papers Number of stored papers.
# TYPE papers gauge
papers 0
`), "papers"))
}
