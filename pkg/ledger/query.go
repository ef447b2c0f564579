/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ledger

import (
	"fmt"
)

const (
	QuerySelectAllDrivers         = "selectAllDrivers"
	QuerySelectAllTrucksForDriver = "selectAllTrucksForDriver"
)

// Query is a named query declared by the business network.
type Query struct {
	Name        string
	Description string
	// Resource is the kind of resources the query returns.
	Resource Kind
	// Params maps each parameter name to the kind it references.
	Params map[string]Kind
}

// DefaultQueries returns the queries declared by the cargo network.
func DefaultQueries() map[string]Query {
	return map[string]Query{
		QuerySelectAllDrivers: {
			Name:        QuerySelectAllDrivers,
			Description: "Select all drivers",
			Resource:    KindDriver,
		},
		QuerySelectAllTrucksForDriver: {
			Name:        QuerySelectAllTrucksForDriver,
			Description: "Select all trucks for a driver",
			Resource:    KindTruck,
			Params:      map[string]Kind{"driver": KindDriver},
		},
	}
}

// BindParams converts entity identifiers to resource URIs for every parameter that references a resource.
// Values that are already resource URIs are kept.
func (q Query) BindParams(params map[string]string) (map[string]interface{}, error) {
	bound := make(map[string]interface{}, len(params))

	for name, kind := range q.Params {
		value, ok := params[name]
		if !ok || value == "" {
			return nil, fmt.Errorf("%w: query %s requires parameter %q", ErrInvalidArgument, q.Name, name)
		}

		if rel, err := ParseRelationship(value); err == nil {
			if rel.Kind != kind {
				return nil, fmt.Errorf("%w: parameter %q must reference a %s", ErrInvalidArgument, name, kind)
			}

			bound[name] = rel.URI()

			continue
		}

		bound[name] = NewRelationship(kind, value).URI()
	}

	for name, value := range params {
		if _, ok := bound[name]; !ok {
			bound[name] = value
		}
	}

	return bound, nil
}
