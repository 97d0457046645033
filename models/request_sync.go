// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Vasiliev

package models

// BatchRequest is the body of POST /sync/batch: one batch carrying every
// pending record across both entity kinds. Pull responses reuse the same
// shape — a pull returns full records, never field-level deltas.
type BatchRequest struct {
	Resources []Resource `json:"resources"`
	TimeSlots []TimeSlot `json:"timeSlots"`
}

// Empty reports whether the batch carries no records at all.
func (b BatchRequest) Empty() bool {
	return len(b.Resources) == 0 && len(b.TimeSlots) == 0
}

// Size returns the total number of records in the batch.
func (b BatchRequest) Size() int {
	return len(b.Resources) + len(b.TimeSlots)
}

// DeviceTokenRequest is the body of POST /api/device/token.
type DeviceTokenRequest struct {
	DeviceID string `json:"deviceId"`
}
