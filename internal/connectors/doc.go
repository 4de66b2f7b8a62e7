// Package connectors holds the sources that discover candidate photos.
// Each subpackage implements the CandidateSource and CandidateWatcher ports
// for one kind of storage.
package connectors
