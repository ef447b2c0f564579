/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package resterr

type Component string

const (
	ConnectionManagerComponent Component = "connection-manager"
	EntityGatewayComponent     Component = "entity-gateway"
	ProvisioningComponent      Component = "identity-provisioning"
	PassportSvcComponent       Component = "passport-service"
	CardStoreComponent         Component = "card-store"
)
