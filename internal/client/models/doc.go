// Package models defines the wire and storage types shared by the Jafa
// client packages.
package models
