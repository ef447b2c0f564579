/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ledger

import (
	"encoding/json"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/samber/lo"
)

// DriverPayload is the plain create/update body of a driver.
type DriverPayload struct {
	ID string `json:"id"`
	DriverDetails
}

// DriverDetails are the driver fields an update overwrites.
type DriverDetails struct {
	Email     string  `json:"email"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Address   Address `json:"address"`
}

// TruckPayload is the plain create/update body of a truck. An empty DriverID means no driver.
type TruckPayload struct {
	ID       string   `json:"id"`
	Code     string   `json:"code"`
	DriverID string   `json:"driverId,omitempty"`
	CargoIDs []string `json:"cargoIds,omitempty"`
}

// CargoPayload is the plain create/update body of a cargo.
type CargoPayload struct {
	ID string `json:"id"`
	CargoDetails
}

// CargoDetails are the cargo fields an update overwrites.
type CargoDetails struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// ChangeDriverPayload is the body of the change-driver request.
type ChangeDriverPayload struct {
	DriverID string `json:"driverId"`
}

// Factory builds typed resources from plain payloads for one business network namespace.
type Factory struct {
	namespace string
}

// NewFactory returns a factory bound to the namespace of the given network.
func NewFactory(def NetworkDefinition) (*Factory, error) {
	if def.Namespace != Namespace {
		return nil, fmt.Errorf("%w: unsupported namespace %q", ErrInvalidArgument, def.Namespace)
	}

	return &Factory{namespace: def.Namespace}, nil
}

// Namespace returns the namespace the factory is bound to.
func (f *Factory) Namespace() string {
	return f.namespace
}

// ResourceURI returns the fully qualified reference to the resource of the given kind and id.
func (f *Factory) ResourceURI(kind Kind, id string) string {
	return NewRelationship(kind, id).URI()
}

// Create decodes a payload of the given kind and builds a new resource from it.
func (f *Factory) Create(kind Kind, payload []byte) (Resource, error) {
	switch kind {
	case KindDriver:
		p := &DriverPayload{}
		if err := decode(payload, p); err != nil {
			return nil, err
		}

		return f.NewDriver(p)
	case KindTruck:
		p := &TruckPayload{}
		if err := decode(payload, p); err != nil {
			return nil, err
		}

		return f.NewTruck(p), nil
	case KindCargo:
		p := &CargoPayload{}
		if err := decode(payload, p); err != nil {
			return nil, err
		}

		return f.NewCargo(p)
	default:
		return nil, fmt.Errorf("%w: unknown resource kind %q", ErrInvalidArgument, kind)
	}
}

// Edit decodes a payload for the kind of r and applies it to a copy of r.
func (f *Factory) Edit(r Resource, payload []byte) (Resource, error) {
	switch v := CloneResource(r).(type) {
	case *Driver:
		p := &DriverPayload{}
		if err := decode(payload, p); err != nil {
			return nil, err
		}

		if err := f.EditDriver(v, p); err != nil {
			return nil, err
		}

		return v, nil
	case *Truck:
		p := &TruckPayload{}
		if err := decode(payload, p); err != nil {
			return nil, err
		}

		f.EditTruck(v, p)

		return v, nil
	case *Cargo:
		p := &CargoPayload{}
		if err := decode(payload, p); err != nil {
			return nil, err
		}

		if err := f.EditCargo(v, p); err != nil {
			return nil, err
		}

		return v, nil
	default:
		return nil, fmt.Errorf("%w: unsupported resource %T", ErrInvalidArgument, r)
	}
}

// NewDriver builds a driver participant.
func (f *Factory) NewDriver(p *DriverPayload) (*Driver, error) {
	d := &Driver{ID: p.ID}

	if err := f.EditDriver(d, p); err != nil {
		return nil, err
	}

	return d, nil
}

// EditDriver overwrites the names, email and address of the driver.
func (f *Factory) EditDriver(d *Driver, p *DriverPayload) error {
	if err := copier.Copy(d, &p.DriverDetails); err != nil {
		return fmt.Errorf("copy driver fields: %w", err)
	}

	return nil
}

// NewTruck builds a truck asset with its driver and cargo relationships.
func (f *Factory) NewTruck(p *TruckPayload) *Truck {
	t := &Truck{ID: p.ID}

	f.EditTruck(t, p)

	return t
}

// EditTruck overwrites the code, the driver and the full cargo list of the truck.
func (f *Factory) EditTruck(t *Truck, p *TruckPayload) {
	t.Code = p.Code

	if p.DriverID == "" {
		t.Driver = nil
	} else {
		rel := NewRelationship(KindDriver, p.DriverID)
		t.Driver = &rel
	}

	t.Cargo = lo.Map(p.CargoIDs, func(id string, _ int) Relationship {
		return NewRelationship(KindCargo, id)
	})
}

// NewCargo builds a cargo asset.
func (f *Factory) NewCargo(p *CargoPayload) (*Cargo, error) {
	c := &Cargo{ID: p.ID}

	if err := f.EditCargo(c, p); err != nil {
		return nil, err
	}

	return c, nil
}

// EditCargo overwrites the name and type of the cargo.
func (f *Factory) EditCargo(c *Cargo, p *CargoPayload) error {
	if err := copier.Copy(c, &p.CargoDetails); err != nil {
		return fmt.Errorf("copy cargo fields: %w", err)
	}

	return nil
}

// NewChangeTruckDriver builds the change-driver transaction.
func (f *Factory) NewChangeTruckDriver(truckID string, p *ChangeDriverPayload) *ChangeTruckDriver {
	return &ChangeTruckDriver{
		Truck:  NewRelationship(KindTruck, truckID),
		Driver: NewRelationship(KindDriver, p.DriverID),
	}
}

func decode(payload []byte, v interface{}) error {
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("%w: decode payload: %v", ErrInvalidArgument, err)
	}

	return nil
}
