// Package models holds the record types exchanged with the Koywe API.
//
// Every entity enumerates the fields the client understands. Keys the server
// sends that are not modeled are kept in the entity's Extra bag and written
// back on marshal, so a record fetched from the API can be updated without
// losing fields this package does not know about.
package models
