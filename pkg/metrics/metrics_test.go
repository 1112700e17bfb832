package metrics

import (
	"errors"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

const prefix = "coachlens_dashboard_"

// metricValue returns the counter or gauge value of the named series whose
// labels include every pair in labels.
func metricValue(reg *prometheus.Registry, name string, labels map[string]string) float64 {
	families, err := reg.Gather()
	if err != nil {
		return -1
	}
	for _, mf := range families {
		if mf.GetName() != prefix+name {
			continue
		}
	series:
		for _, m := range mf.GetMetric() {
			got := map[string]string{}
			for _, lp := range m.GetLabel() {
				got[lp.GetName()] = lp.GetValue()
			}
			for k, v := range labels {
				if got[k] != v {
					continue series
				}
			}
			if c := m.GetCounter(); c != nil {
				return c.GetValue()
			}
			if g := m.GetGauge(); g != nil {
				return g.GetValue()
			}
		}
	}
	return 0
}

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			manager := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
				So(manager.Enabled(), ShouldBeTrue)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithCustomLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)
			manager.SetDocumentsLoaded(2)

			Convey("Then metric names carry the namespace and labels", func() {
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				var found bool
				for _, mf := range families {
					if mf.GetName() != "test_unit_documents_loaded" {
						continue
					}
					found = true
					labels := mf.GetMetric()[0].GetLabel()
					So(labels, ShouldHaveLength, 1)
					So(labels[0].GetName(), ShouldEqual, "env")
					So(labels[0].GetValue(), ShouldEqual, "test")
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When creating with empty values", func() {
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithHistogramBuckets(nil),
				WithCustomLabels(nil),
				WithPrometheusRegistry(prometheus.NewRegistry()),
			)

			Convey("Then defaults are kept", func() {
				So(manager.namespace, ShouldEqual, "coachlens")
				So(manager.subsystem, ShouldEqual, "dashboard")
				So(manager.histogramBuckets, ShouldResemble, prometheus.DefBuckets)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given a manager on its own registry", t, func() {
		reg := prometheus.NewRegistry()
		manager := NewManager(WithPrometheusRegistry(reg))

		Convey("When recording fallbacks", func() {
			So(manager.RecordFallback(FallbackMissingRates), ShouldBeNil)
			So(manager.RecordFallback(FallbackMissingRates), ShouldBeNil)
			So(manager.RecordFallback(FallbackMalformedNumber), ShouldBeNil)

			Convey("Then each kind is counted separately", func() {
				So(metricValue(reg, "resolution_fallbacks_total", map[string]string{"kind": FallbackMissingRates}), ShouldEqual, 2)
				So(metricValue(reg, "resolution_fallbacks_total", map[string]string{"kind": FallbackMalformedNumber}), ShouldEqual, 1)
				So(metricValue(reg, "resolution_fallbacks_total", map[string]string{"kind": FallbackMissingVariant}), ShouldEqual, 0)
			})
		})

		Convey("When recording an unknown fallback kind", func() {
			err := manager.RecordFallback("cosmic_rays")

			Convey("Then it is rejected", func() {
				So(errors.Is(err, ErrUnknownFallback), ShouldBeTrue)
			})
		})

		Convey("When recording dataset sizes", func() {
			manager.SetDatasetSize("retention__coaching", 12, 5)
			manager.SetDatasetSize("retention__coaching", 14, 5)

			Convey("Then the gauges hold the latest values", func() {
				So(metricValue(reg, "features", map[string]string{"key": "retention__coaching"}), ShouldEqual, 14)
				So(metricValue(reg, "consultants", map[string]string{"key": "retention__coaching"}), ShouldEqual, 5)
			})
		})

		Convey("When animations start and stop", func() {
			manager.IncActiveAnimations()
			manager.IncActiveAnimations()
			manager.DecActiveAnimations()
			manager.RecordAnimationFrame()
			manager.RecordAnimationFrame()

			Convey("Then the gauge and counter follow", func() {
				So(metricValue(reg, "animations_active", nil), ShouldEqual, 1)
				So(metricValue(reg, "animation_frames_total", nil), ShouldEqual, 2)
			})
		})

		Convey("When recording HTTP metrics", func() {
			So(func() {
				manager.RecordHTTPRequest("/effects", "GET", "200")
				manager.RecordHTTPRequestDuration("/effects", "GET", "200", 3.5)
				manager.RecordErrorByEndpoint("/effects", "GET", "invalid_query")
			}, ShouldNotPanic)
			So(metricValue(reg, "http_requests_total", map[string]string{"endpoint": "/effects", "status_code": "200"}), ShouldEqual, 1)
		})
	})
}

func TestMetricsDisabled(t *testing.T) {
	Convey("Given a disabled manager", t, func() {
		reg := prometheus.NewRegistry()
		manager := NewManager(WithMetricsEnabled(false), WithPrometheusRegistry(reg))

		Convey("When recording", func() {
			manager.RecordDocumentLoadError()
			manager.SetDocumentsLoaded(4)
			err := manager.RecordFallback("anything")

			Convey("Then nothing is recorded", func() {
				So(err, ShouldBeNil)
				So(metricValue(reg, "document_load_errors_total", nil), ShouldEqual, 0)
				So(metricValue(reg, "documents_loaded", nil), ShouldEqual, 0)
			})
		})
	})
}

func TestGlobalMetrics(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When recording through package functions", func() {
			So(func() {
				RecordDocumentLoad(1.2)
				RecordDocumentLoadError()
				SetDocumentsLoaded(1)
				_ = RecordFallback(FallbackEmptyCollection)
				RecordQualityWarning()
				SetDatasetSize("a__b", 1, 1)
				RecordHTTPRequest("/healthz", "GET", "200")
				RecordHTTPRequestDuration("/healthz", "GET", "200", 1)
				RecordErrorByEndpoint("/healthz", "GET", "internal")
				RecordAnimationFrame()
				IncActiveAnimations()
				DecActiveAnimations()
				UpdateSystemMemoryUsage(1024)
				UpdateSystemGoroutineCount(10)
			}, ShouldNotPanic)
		})

		Convey("Then the registry exposes them", func() {
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
			So(len(families), ShouldBeGreaterThan, 0)
		})
	})
}

func TestMetricsConcurrency(t *testing.T) {
	Convey("Given concurrent recording", t, func() {
		reg := prometheus.NewRegistry()
		manager := NewManager(WithPrometheusRegistry(reg))
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					manager.RecordAnimationFrame()
				}
			}()
		}
		wg.Wait()

		Convey("Then no increments are lost", func() {
			So(metricValue(reg, "animation_frames_total", nil), ShouldEqual, 800)
		})
	})
}

func TestConfigure(t *testing.T) {
	t.Cleanup(func() { Configure() })

	Convey("Given the global manager rebuilt with a namespace", t, func() {
		m := Configure(
			WithNamespace("lens"),
			WithSubsystem("ops"),
			WithCustomLabels(map[string]string{"site": "eu"}),
			WithHistogramBuckets([]float64{0.5, 1}),
		)
		SetDocumentsLoaded(3)

		Convey("Then the new registry serves the renamed series", func() {
			So(GetRegistry(), ShouldNotBeNil)
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
			var got float64
			for _, mf := range families {
				if mf.GetName() == "lens_ops_documents_loaded" {
					got = mf.GetMetric()[0].GetGauge().GetValue()
					So(mf.GetMetric()[0].GetLabel()[0].GetValue(), ShouldEqual, "eu")
				}
			}
			So(got, ShouldEqual, 3)
			So(m.histogramBuckets, ShouldResemble, []float64{0.5, 1})
		})

		Convey("Then disabling stops recording through package functions", func() {
			Configure(WithMetricsEnabled(false))
			RecordDocumentLoadError()
			So(metricValue(GetRegistry(), "document_load_errors_total", nil), ShouldEqual, 0)
		})
	})
}
