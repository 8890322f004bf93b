package domain

// Table is the name of a storage collection.
type Table string

const (
	TableListings Table = "listings"
)
