// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the interface services use to record domain events.
type Recorder interface {
	RecordLikeAdded()
	RecordMessageSent()
	RecordMessagePurged()
	RecordPhotoUploaded()
	RecordPhotoDeleted()
}

// Collector is the Prometheus-backed Recorder implementation.
type Collector struct {
	likesAdded     prometheus.Counter
	messagesSent   prometheus.Counter
	messagesPurged prometheus.Counter
	photosUploaded prometheus.Counter
	photosDeleted  prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics on the registry.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		likesAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dating_likes_added_total",
			Help: "Total number of like edges created",
		}),
		messagesSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dating_messages_sent_total",
			Help: "Total number of messages sent",
		}),
		messagesPurged: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dating_messages_purged_total",
			Help: "Total number of messages physically removed after both parties deleted them",
		}),
		photosUploaded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dating_photos_uploaded_total",
			Help: "Total number of photos uploaded",
		}),
		photosDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dating_photos_deleted_total",
			Help: "Total number of photos deleted",
		}),
	}

	reg.MustRegister(
		c.likesAdded,
		c.messagesSent,
		c.messagesPurged,
		c.photosUploaded,
		c.photosDeleted,
	)

	return c
}

// RecordLikeAdded records a created like edge.
func (c *Collector) RecordLikeAdded() { c.likesAdded.Inc() }

// RecordMessageSent records a sent message.
func (c *Collector) RecordMessageSent() { c.messagesSent.Inc() }

// RecordMessagePurged records a purged message.
func (c *Collector) RecordMessagePurged() { c.messagesPurged.Inc() }

// RecordPhotoUploaded records an uploaded photo.
func (c *Collector) RecordPhotoUploaded() { c.photosUploaded.Inc() }

// RecordPhotoDeleted records a deleted photo.
func (c *Collector) RecordPhotoDeleted() { c.photosDeleted.Inc() }

// Handler returns the HTTP handler serving the metrics endpoint.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// Nop is a Recorder that records nothing, for tests.
type Nop struct{}

func (Nop) RecordLikeAdded()     {}
func (Nop) RecordMessageSent()   {}
func (Nop) RecordMessagePurged() {}
func (Nop) RecordPhotoUploaded() {}
func (Nop) RecordPhotoDeleted()  {}
