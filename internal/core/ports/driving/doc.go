// Package driving defines the primary ports: the interfaces through
// which the CLI drives the aggregation core.
package driving
