/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ledger

import (
	"encoding/json"
	"fmt"
	"strings"
)

const resourcePrefix = "resource:"

// Kind is the type of a ledger resource.
type Kind string

const (
	KindDriver Kind = "Driver"
	KindTruck  Kind = "Truck"
	KindCargo  Kind = "Cargo"
)

// Kinds lists every resource kind of the cargo network.
var Kinds = []Kind{KindDriver, KindTruck, KindCargo} //nolint:gochecknoglobals

// ParseKind returns the kind with the given name.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}

	return "", fmt.Errorf("%w: unknown resource kind %q", ErrInvalidArgument, s)
}

// Class returns the fully qualified class name of the kind.
func (k Kind) Class() string {
	return Namespace + "." + string(k)
}

// IsParticipant is true for kinds held in a participant registry.
func (k Kind) IsParticipant() bool {
	return k == KindDriver
}

// Resource is a typed ledger resource.
type Resource interface {
	Kind() Kind
	Identifier() string
}

// Relationship references another resource by kind and identifier.
// It is serialized as resource:<namespace>.<Kind>#<id>.
type Relationship struct {
	Kind Kind
	ID   string
}

// NewRelationship returns a relationship to the resource of the given kind and id.
func NewRelationship(kind Kind, id string) Relationship {
	return Relationship{Kind: kind, ID: id}
}

// URI returns the fully qualified resource URI.
func (r Relationship) URI() string {
	return resourcePrefix + r.Kind.Class() + "#" + r.ID
}

func (r Relationship) String() string {
	return r.URI()
}

// ParseRelationship parses a resource URI.
func ParseRelationship(uri string) (Relationship, error) {
	rest, ok := strings.CutPrefix(uri, resourcePrefix)
	if !ok {
		return Relationship{}, fmt.Errorf("%w: relationship %q has no resource prefix", ErrInvalidArgument, uri)
	}

	class, id, ok := strings.Cut(rest, "#")
	if !ok || id == "" {
		return Relationship{}, fmt.Errorf("%w: relationship %q has no identifier", ErrInvalidArgument, uri)
	}

	name, ok := strings.CutPrefix(class, Namespace+".")
	if !ok {
		return Relationship{}, fmt.Errorf("%w: relationship %q is outside namespace %s",
			ErrInvalidArgument, uri, Namespace)
	}

	kind, err := ParseKind(name)
	if err != nil {
		return Relationship{}, err
	}

	return Relationship{Kind: kind, ID: id}, nil
}

func (r Relationship) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.URI())
}

func (r *Relationship) UnmarshalJSON(data []byte) error {
	var uri string

	if err := json.Unmarshal(data, &uri); err != nil {
		return fmt.Errorf("%w: relationship must be a string", ErrInvalidArgument)
	}

	parsed, err := ParseRelationship(uri)
	if err != nil {
		return err
	}

	*r = parsed

	return nil
}

// Address is a postal address concept.
type Address struct {
	Country string `json:"country"`
	City    string `json:"city"`
}

func (a Address) MarshalJSON() ([]byte, error) {
	type address Address

	return json.Marshal(struct {
		Class string `json:"$class"`
		address
	}{
		Class:   AddressClass,
		address: address(a),
	})
}

// Driver is the participant driving trucks.
type Driver struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Address   Address `json:"address"`
}

func (d *Driver) Kind() Kind         { return KindDriver }
func (d *Driver) Identifier() string { return d.ID }

func (d *Driver) MarshalJSON() ([]byte, error) {
	type driver Driver

	return json.Marshal(struct {
		Class string `json:"$class"`
		*driver
	}{
		Class:  KindDriver.Class(),
		driver: (*driver)(d),
	})
}

// Cargo is an asset carried by trucks.
type Cargo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

func (c *Cargo) Kind() Kind         { return KindCargo }
func (c *Cargo) Identifier() string { return c.ID }

func (c *Cargo) MarshalJSON() ([]byte, error) {
	type cargo Cargo

	return json.Marshal(struct {
		Class string `json:"$class"`
		*cargo
	}{
		Class: KindCargo.Class(),
		cargo: (*cargo)(c),
	})
}

// Truck is an asset with an optional driver and a list of cargo.
type Truck struct {
	ID     string         `json:"id"`
	Code   string         `json:"code"`
	Driver *Relationship  `json:"driver,omitempty"`
	Cargo  []Relationship `json:"cargo"`
}

func (t *Truck) Kind() Kind         { return KindTruck }
func (t *Truck) Identifier() string { return t.ID }

func (t *Truck) MarshalJSON() ([]byte, error) {
	type truck Truck

	v := (truck)(*t)
	if v.Cargo == nil {
		v.Cargo = []Relationship{}
	}

	return json.Marshal(struct {
		Class string `json:"$class"`
		*truck
	}{
		Class: KindTruck.Class(),
		truck: &v,
	})
}

// Clone returns a deep copy of the truck.
func (t *Truck) Clone() *Truck {
	c := *t

	if t.Driver != nil {
		d := *t.Driver
		c.Driver = &d
	}

	if t.Cargo != nil {
		c.Cargo = make([]Relationship, len(t.Cargo))
		copy(c.Cargo, t.Cargo)
	}

	return &c
}

// ResolvedTruck is a truck whose relationships are replaced by the referenced resources.
type ResolvedTruck struct {
	ID     string   `json:"id"`
	Code   string   `json:"code"`
	Driver *Driver  `json:"driver,omitempty"`
	Cargo  []*Cargo `json:"cargo"`
}

func (t *ResolvedTruck) MarshalJSON() ([]byte, error) {
	type truck ResolvedTruck

	v := (truck)(*t)
	if v.Cargo == nil {
		v.Cargo = []*Cargo{}
	}

	return json.Marshal(struct {
		Class string `json:"$class"`
		*truck
	}{
		Class: KindTruck.Class(),
		truck: &v,
	})
}

// CloneResource returns a deep copy of a resource.
func CloneResource(r Resource) Resource {
	switch v := r.(type) {
	case *Driver:
		c := *v

		return &c
	case *Cargo:
		c := *v

		return &c
	case *Truck:
		return v.Clone()
	default:
		return r
	}
}
