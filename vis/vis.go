// Package vis renders the rank/entropy/light/karma fields the batch engine
// produces as a force-directed graph and a bar chart, using go-echarts.
//
// Rendering an HTML page is a presentation concern, not a driver/CLI
// concern: this package returns chart values for the caller to render or
// embed. It does not open a socket or read argv; that glue belongs to
// whatever process embeds this package.
package vis

import (
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/relevant-community/knowledge-rank/engine"
	"github.com/relevant-community/knowledge-rank/graph"
)

// The category constants bucket a node for coloring/legend purposes.
const (
	categoryDangling = iota
	categoryLowEntropy
	categoryContent
)

// ContentGraph builds a force-directed *charts.Graph over the content
// nodes of in/out: node size follows rank, color follows light, and the
// category flags dangling nodes (nodes with no inbound edges, which
// receive only the default-rank correction) separately from ordinary ones.
func ContentGraph(b *graph.Builder, in engine.Input, out engine.Output, title string) *charts.Graph {
	nodes := make([]opts.GraphNode, 0, in.C)
	maxLight := 0.0
	for c := 0; c < in.C; c++ {
		if out.Light[c] > maxLight {
			maxLight = out.Light[c]
		}
	}

	for c := 0; c < in.C; c++ {
		category := categoryContent
		switch {
		case in.InCount[c] == 0:
			category = categoryDangling
		case out.Entropy[c] == 0:
			category = categoryLowEntropy
		}

		size := 10 + 40*math.Sqrt(out.Rank[c]*float64(in.C))
		nodes = append(nodes, opts.GraphNode{
			Name:       b.ContentID(c),
			Value:      float32(out.Rank[c]),
			SymbolSize: size,
			Category:   category,
			ItemStyle: &opts.ItemStyle{
				Color: lightColor(out.Light[c], maxLight),
			},
		})
	}

	links := make([]opts.GraphLink, 0, in.E)
	seen := make(map[[2]int]bool)
	edgeStart, _ := engine.PrefixSum(in.OutCount)
	for c := 0; c < in.C; c++ {
		start := edgeStart[c]
		end := start + in.OutCount[c]
		for e := start; e < end; e++ {
			target := int(in.OutTarget[e])
			key := [2]int{c, target}
			if seen[key] {
				continue
			}
			seen[key] = true
			links = append(links, opts.GraphLink{
				Source: b.ContentID(c),
				Target: b.ContentID(target),
			})
		}
	}

	g := charts.NewGraph()
	g.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: title}))
	g.AddSeries("rank", nodes, links).
		SetSeriesOptions(
			charts.WithGraphChartOpts(opts.GraphChart{
				Categories: []*opts.GraphCategory{
					{Name: "dangling"},
					{Name: "zero-entropy"},
					{Name: "content"},
				},
				Force:              &opts.GraphForce{Repulsion: 2000},
				Layout:             "force",
				Roam:               true,
				FocusNodeAdjacency: true,
			}),
			charts.WithLabelOpts(opts.Label{Show: true, Position: "right", Color: "black"}),
			charts.WithEmphasisOpts(opts.Emphasis{
				Label: &opts.Label{
					Formatter: "rank: {c}",
					Show:      true,
					Color:     "black",
				},
			}),
		)
	return g
}

// KarmaBar builds a bar chart of per-user karma attribution.
func KarmaBar(b *graph.Builder, in engine.Input, out engine.Output, title string) *charts.Bar {
	labels := make([]string, in.U)
	values := make([]opts.BarData, in.U)
	for u := 0; u < in.U; u++ {
		labels[u] = b.UserID(u)
		values[u] = opts.BarData{Value: out.Karma[u]}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: title}))
	bar.SetXAxis(labels).AddSeries("karma", values)
	return bar
}

// WritePage renders both charts onto a single components.Page and writes
// it to w. Left to the caller whether w is a file, an HTTP response, or a
// buffer — this package does not own where the output goes.
func WritePage(w io.Writer, contentGraph *charts.Graph, karma *charts.Bar) error {
	page := components.NewPage()
	page.AddCharts(contentGraph, karma)
	return page.Render(w)
}

// lightColor maps a light value into a green intensity between a dim floor
// and full brightness, continuous rather than a fixed per-category palette
// since light itself varies continuously.
func lightColor(value, max float64) string {
	if max <= 0 {
		return "#606060"
	}
	t := value / max
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	intensity := 64 + int(t*(255-64))
	return rgbHex(0, intensity, 20)
}

func rgbHex(r, g, bl int) string {
	const hex = "0123456789abcdef"
	buf := make([]byte, 7)
	buf[0] = '#'
	vals := [3]int{r, g, bl}
	for i, v := range vals {
		if v < 0 {
			v = 0
		}
		if v > 255 {
			v = 255
		}
		buf[1+i*2] = hex[v>>4]
		buf[2+i*2] = hex[v&0xf]
	}
	return string(buf)
}
