package swis

import (
	"fmt"
	"strings"
)

// The three discovery queries share one column shape so every result row
// decodes into Element. Node rows carry literal empty strings for the
// sub-element columns; interface and volume rows alias their own identity
// into them. ORDER BY keeps repeat runs byte-for-byte reproducible.

const nodesQuery = `SELECT NodeID, Caption, IPAddress, Vendor, Uri, InstanceType,
'' AS SubElementID, '' AS SubElementName, '' AS SubElementType, '' AS SubElementTypeDescription
FROM Orion.Nodes
ORDER BY NodeID`

const interfacesQuery = `SELECT I.NodeID, I.Node.Caption AS Caption, I.Node.IPAddress AS IPAddress, I.Node.Vendor AS Vendor, I.Uri, I.InstanceType,
ToString(I.InterfaceID) AS SubElementID, I.Caption AS SubElementName, 'Interface' AS SubElementType, I.TypeDescription AS SubElementTypeDescription
FROM Orion.NPM.Interfaces I
ORDER BY I.NodeID, I.InterfaceID`

const volumesQuery = `SELECT V.NodeID, V.Node.Caption AS Caption, V.Node.IPAddress AS IPAddress, V.Node.Vendor AS Vendor, V.Uri, V.InstanceType,
ToString(V.VolumeID) AS SubElementID, V.Caption AS SubElementName, 'Volume' AS SubElementType, V.TypeDescription AS SubElementTypeDescription
FROM Orion.Volumes V
ORDER BY V.NodeID, V.VolumeID`

// withLimit rewrites q to request at most limit rows. limit <= 0 leaves the
// query unlimited.
func withLimit(q string, limit int) string {
	if limit <= 0 {
		return q
	}
	return strings.Replace(q, "SELECT ", fmt.Sprintf("SELECT TOP %d ", limit), 1)
}
