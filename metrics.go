package main

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"papernet/services"
)

var (
	papersAddedCounter prometheus.Counter
	linksAddedCounter  prometheus.Counter
	backupsCounter     *prometheus.CounterVec
)

func init() {
	papersAddedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "papers_added_total",
			Help: "Total number of papers added through the form.",
		},
	)
	linksAddedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "paper_links_added_total",
			Help: "Total number of paper links attached on creation.",
		},
	)
	backupsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backups_total",
			Help: "Scheduled database backups by result.",
		},
		[]string{"result"},
	)
	prometheus.MustRegister(papersAddedCounter, linksAddedCounter, backupsCounter)
}

// graphCollector reports the current size of the graph on every scrape.
type graphCollector struct {
	papers    *services.PaperService
	log       *zap.Logger
	paperDesc *prometheus.Desc
	linkDesc  *prometheus.Desc
}

func newGraphCollector(papers *services.PaperService, log *zap.Logger) *graphCollector {
	return &graphCollector{
		papers:    papers,
		log:       log,
		paperDesc: prometheus.NewDesc("papers", "Number of stored papers.", nil, nil),
		linkDesc:  prometheus.NewDesc("paper_links", "Number of stored paper links.", nil, nil),
	}
}

func (g *graphCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- g.paperDesc
	ch <- g.linkDesc
}

func (g *graphCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	papers, links, err := g.papers.Count(ctx)
	if err != nil {
		g.log.Warn("Graph size collection failed", zap.Error(err))
		return
	}
	ch <- prometheus.MustNewConstMetric(g.paperDesc, prometheus.GaugeValue, float64(papers))
	ch <- prometheus.MustNewConstMetric(g.linkDesc, prometheus.GaugeValue, float64(links))
}
