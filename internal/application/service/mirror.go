package service

import "github.com/gayathrinuthana/portfolio-api/internal/domain/portfolio"

// Mirror is the fast in-process working copy of portfolio documents, distinct
// from the durable store. It is populated once at startup, written on each
// mutation, and never independently expired.
//
// Put performs a shallow merge and fails with a not-found error when no entry
// exists for the owner: unlike the durable store, the mirror never creates
// implicitly.
type Mirror interface {
	Get(ownerID string) (*portfolio.Document, error)
	Put(ownerID string, partial portfolio.Partial) (*portfolio.Document, error)
	Seed(doc *portfolio.Document)
	Len() int
}
