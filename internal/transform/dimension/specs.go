package dimension

// Concrete dimensions of the sales mart. Column names match what the source
// extractor returns, so no renaming happens between extract and load.
var (
	Customer = Spec{
		Table:   "dim_customer",
		Key:     "customer_id",
		Text:    []string{"customer_name", "category_name", "city", "province", "country"},
		Columns: []string{"customer_id", "customer_name", "category_name", "city", "province", "country"},
	}

	Employee = Spec{
		Table:   "dim_employee",
		Key:     "employee_id",
		Text:    []string{"full_name", "preferred_name"},
		Columns: []string{"employee_id", "full_name", "preferred_name"},
	}

	Product = Spec{
		Table:   "dim_product",
		Key:     "product_id",
		Text:    []string{"product_name", "size", "brand", "package_type"},
		Flags:   []string{"is_chiller"},
		Refs:    []string{"supplier_id"},
		Columns: []string{"product_id", "product_name", "size", "brand", "is_chiller", "package_type", "supplier_id"},
	}

	Supplier = Spec{
		Table:   "dim_supplier",
		Key:     "supplier_id",
		Text:    []string{"supplier_name", "category_name", "city", "province", "country"},
		Columns: []string{"supplier_id", "supplier_name", "category_name", "city", "province", "country"},
	}
)

// All lists the dimensions in load order.
func All() []Spec { return []Spec{Customer, Product, Employee, Supplier} }
