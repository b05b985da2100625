// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package customer is the demo domain displayed through a configurable table.

It owns the customer record, its table definitions, the filter form of the
customer list and the PostgreSQL backed collection the table view pages
through.
*/
package customer

import (
	"strings"
	"time"
)

// Status is the lifecycle state of a customer account.
type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
	StatusArchived  Status = "archived"
)

// Statuses lists every known status in display order.
var Statuses = []Status{StatusActive, StatusSuspended, StatusArchived}

// Label returns the human readable status.
func (s Status) Label() string {
	switch s {
	case StatusActive:
		return "Active"
	case StatusSuspended:
		return "Suspended"
	case StatusArchived:
		return "Archived"
	default:
		return string(s)
	}
}

// Customer is one row of demo.customer.
type Customer struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email_address"`
	Status    Status    `json:"status"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// FullName joins the first and last name, skipping blanks.
func (c *Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// DisplayStatus is picked up by the "status" column instead of the raw value.
func (c *Customer) DisplayStatus() string {
	return c.Status.Label()
}
