// Package catalog contains the domain model of the example:
// a small library catalog with printed books and e-books.
//
// Books are values. Their lending state (status and available copies) changes only by
// applying a decided domain event with Evolve, so the package also holds the domain events
// and the DecisionResult type the lending package returns.
//
// Authors and categories are shared between books by pointer. ShallowCopy keeps that sharing,
// DeepCopy duplicates them.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'domain' layer.
package catalog
