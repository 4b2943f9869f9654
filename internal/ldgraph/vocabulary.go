package ldgraph

// DFCBusinessIRI is the namespace bound to the "dfc-b" prefix.
const DFCBusinessIRI = "https://github.com/datafoodconsortium/ontology/releases/latest/download/DFC_BusinessOntology.owl#"

const (
	Prefix = "dfc-b"

	TypeOrder     = "dfc-b:Order"
	TypeOrderLine = "dfc-b:OrderLine"
	TypeShipment  = "dfc-b:Shipment"
	TypeStep      = "dfc-b:Step"
	TypeVehicle   = "dfc-b:Vehicle"
	TypeRoute     = "dfc-b:Route"
)

// Input relations and literals.
const (
	HasPart         = "dfc-b:hasPart"
	PartOf          = "dfc-b:partOf"
	Selects         = "dfc-b:selects"
	PickedUpAt      = "dfc-b:pickedUpAt"
	HasAddress      = "dfc-b:hasAddress"
	FulfilledBy     = "dfc-b:fulfilledBy"
	ConstitutedBy   = "dfc-b:constitutedBy"
	IsStoredIn      = "dfc-b:isStoredIn"
	Longitude       = "dfc-b:longitude"
	Latitude        = "dfc-b:latitude"
	HasOpeningHours = "dfc-b:hasOpeningHours"
	StartDate       = "dfc-b:startDate"
	EndDate         = "dfc-b:endDate"
)

// Reconstructed entity properties.
const (
	IsChippedIn = "dfc-b:isChippedIn"
	Transports  = "dfc-b:transports"
	StartAt     = "dfc-b:startAt"
	EndAt       = "dfc-b:endAt"
	StepType    = "dfc-b:stepType"
	HasRoute    = "dfc-b:hasRoute"
	Geo         = "dfc-b:geo"
	Arrival     = "dfc-b:arrival"
	Duration    = "dfc-b:duration"
	WaitingTime = "dfc-b:waiting_time"
	Pickup      = "dfc-b:pickup"
	Delivery    = "dfc-b:delivery"
	Ships       = "dfc-b:ships"
	Geometry    = "dfc-b:geometry"
	Vehicle     = "dfc-b:vehicle"
	Steps       = "dfc-b:steps"
)

// Correlation id terms attached to order lines.
const (
	PickupShipmentID   = "pickupShipmentId"
	DeliveryShipmentID = "deliveryShipmentId"

	correlationNamespace = "https://example.org/"
	xsdInteger           = "http://www.w3.org/2001/XMLSchema#integer"
)

// idValued lists the relations declared as identifier-valued in the
// reconstruction vocabulary, so flattening never inlines them.
var idValued = []string{
	IsChippedIn,
	HasRoute,
	Vehicle,
	Steps,
	Ships,
	Pickup,
	Delivery,
	IsStoredIn,
	Transports,
	StartAt,
	EndAt,
}
