// Package counterparty mirrors catalog counterparties into the Supliers collection.
//
// Delivery price, delivery time, description and logo link are read from
// counterparty attributes by their exact names.
package counterparty
