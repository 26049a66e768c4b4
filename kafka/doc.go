// Package kafka implements the log fixture driver. Target names are topics
// and fixtures are Message values produced one at a time.
//
// Truncation deletes records up to each partition's high watermark through
// the admin API, so topics keep their configuration and partition layout.
// Metadata and watermarks come from IBM/sarama; records are written with a
// segmentio/kafka-go Writer. Connect builds all three clients from one Config
// with shared TLS and SASL settings:
//
//	kafka:
//	  enabled: true
//	  brokers: ["localhost:9092"]
//	  enable_sasl: true
//	  sasl_mechanism: SCRAM-SHA-512
package kafka
