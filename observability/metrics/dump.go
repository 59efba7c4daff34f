package metrics

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// Dump writes every gathered counter and histogram sample as a flat
// "name{labels} value" line, sorted by name. One-shot tools use it in place
// of a scrape endpoint.
func Dump(w io.Writer, gatherer prometheus.Gatherer) error {
	families, err := gatherer.Gather()
	if err != nil {
		return err
	}
	sort.Slice(families, func(i, j int) bool { return families[i].GetName() < families[j].GetName() })
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			labels := formatLabels(metric.GetLabel())
			switch family.GetType() {
			case dto.MetricType_COUNTER:
				if _, err := fmt.Fprintf(w, "%s%s %g\n", family.GetName(), labels, metric.GetCounter().GetValue()); err != nil {
					return err
				}
			case dto.MetricType_HISTOGRAM:
				h := metric.GetHistogram()
				if _, err := fmt.Fprintf(w, "%s_count%s %d\n%s_sum%s %g\n",
					family.GetName(), labels, h.GetSampleCount(),
					family.GetName(), labels, h.GetSampleSum()); err != nil {
					return err
				}
			case dto.MetricType_GAUGE:
				if _, err := fmt.Fprintf(w, "%s%s %g\n", family.GetName(), labels, metric.GetGauge().GetValue()); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func formatLabels(pairs []*dto.LabelPair) string {
	if len(pairs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		parts = append(parts, fmt.Sprintf("%s=%q", pair.GetName(), pair.GetValue()))
	}
	return "{" + strings.Join(parts, ",") + "}"
}
