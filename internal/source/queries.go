package source

// DefaultQueries read WideWorldImporters on SQL Server. Columns are aliased
// to the raw names the transforms expect.
var DefaultQueries = map[Entity]string{
	InvoiceLines: `
SELECT
    I.InvoiceID            AS invoice_id,
    L.InvoiceLineID        AS invoice_line_id,
    I.CustomerID           AS customer_id,
    I.SalespersonPersonID  AS employee_id,
    L.StockItemID          AS product_id,
    I.InvoiceDate          AS invoice_date,
    L.Quantity             AS quantity,
    L.UnitPrice            AS unit_price,
    L.TaxAmount            AS tax_amount,
    L.ExtendedPrice        AS extended_price,
    L.LineProfit           AS line_profit
FROM Sales.Invoices I
JOIN Sales.InvoiceLines L
  ON I.InvoiceID = L.InvoiceID`,

	Customers: `
SELECT
    C.CustomerID             AS customer_id,
    C.CustomerName           AS customer_name,
    CC.CustomerCategoryName  AS category_name,
    CI.CityName              AS city,
    SP.StateProvinceName     AS province,
    CO.CountryName           AS country
FROM Sales.Customers C
JOIN Sales.CustomerCategories CC ON C.CustomerCategoryID = CC.CustomerCategoryID
JOIN Application.Cities CI       ON C.DeliveryCityID = CI.CityID
JOIN Application.StateProvinces SP ON CI.StateProvinceID = SP.StateProvinceID
JOIN Application.Countries CO    ON SP.CountryID = CO.CountryID`,

	// Salespeople only; invoices reference them through SalespersonPersonID.
	Employees: `
SELECT
    P.PersonID       AS employee_id,
    P.FullName       AS full_name,
    P.PreferredName  AS preferred_name
FROM Application.People P
WHERE P.IsSalesperson = 1`,

	Products: `
SELECT
    S.StockItemID       AS product_id,
    S.StockItemName     AS product_name,
    S.Size              AS size,
    S.Brand             AS brand,
    S.IsChillerStock    AS is_chiller,
    PT.PackageTypeName  AS package_type,
    S.SupplierID        AS supplier_id
FROM Warehouse.StockItems S
JOIN Warehouse.PackageTypes PT ON S.UnitPackageID = PT.PackageTypeID`,

	Suppliers: `
SELECT
    S.SupplierID             AS supplier_id,
    S.SupplierName           AS supplier_name,
    SC.SupplierCategoryName  AS category_name,
    CI.CityName              AS city,
    SP.StateProvinceName     AS province,
    CO.CountryName           AS country
FROM Purchasing.Suppliers S
JOIN Purchasing.SupplierCategories SC ON S.SupplierCategoryID = SC.SupplierCategoryID
JOIN Application.Cities CI       ON S.DeliveryCityID = CI.CityID
JOIN Application.StateProvinces SP ON CI.StateProvinceID = SP.StateProvinceID
JOIN Application.Countries CO    ON SP.CountryID = CO.CountryID`,
}
