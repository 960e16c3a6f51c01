// Package model defines the value types shared across FSBI's packages:
// stored document entries, ranked search results, canonical child keys, and
// the snapshot export shapes. Keeping them here avoids dependency cycles
// between the index core and the transport layer.
package model
