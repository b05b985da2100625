package schema

// DemoCustomerTable represents the 'demo.customer' table
type DemoCustomerTable struct {
	Table        string
	ID           string
	FirstName    string
	LastName     string
	EmailAddress string
	Status       string
	IsActive     string
	CreatedAt    string
}

// DemoCustomer is the schema definition for demo.customer
var DemoCustomer = DemoCustomerTable{
	Table:        "demo.customer",
	ID:           "id",
	FirstName:    "firstname",
	LastName:     "lastname",
	EmailAddress: "emailaddress",
	Status:       "status",
	IsActive:     "isactive",
	CreatedAt:    "createdat",
}
