package service

import "github.com/prometheus/client_golang/prometheus"

// IngestMetrics counts upload outcomes and the rows they produced. A nil *IngestMetrics
// records nothing.
type IngestMetrics struct {
	uploads      *prometheus.CounterVec
	applicants   *prometheus.CounterVec
	applications prometheus.Counter
}

// NewIngestMetrics creates and registers the ingestion collectors on reg.
func NewIngestMetrics(reg prometheus.Registerer) (*IngestMetrics, error) {
	m := &IngestMetrics{
		uploads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "applicantpool_uploads_total",
				Help: "Spreadsheet uploads by outcome.",
			},
			[]string{"outcome"},
		),
		applicants: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "applicantpool_applicants_resolved_total",
				Help: "Applicants resolved from committed uploads, by whether they were created.",
			},
			[]string{"result"},
		),
		applications: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "applicantpool_applications_added_total",
				Help: "Applications appended by committed uploads.",
			},
		),
	}

	for _, c := range []prometheus.Collector{m.uploads, m.applicants, m.applications} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *IngestMetrics) rejected() {
	if m == nil {
		return
	}
	m.uploads.WithLabelValues("rejected").Inc()
}

func (m *IngestMetrics) failed() {
	if m == nil {
		return
	}
	m.uploads.WithLabelValues("failed").Inc()
}

func (m *IngestMetrics) committed(s UploadStats) {
	if m == nil {
		return
	}
	m.uploads.WithLabelValues("committed").Inc()
	m.applicants.WithLabelValues("new").Add(float64(s.NewApplicants))
	m.applicants.WithLabelValues("existing").Add(float64(s.ExistingApplicants))
	m.applications.Add(float64(s.ApplicationsAdded))
}
