package constants

const (
	ExchangeListings        = "listings_exchange"
	QueueListingEvents      = "discovery_listing_events"
	RoutingKeyListingEvents = "listing.events"

	ConsumerTagListingEvents = "discovery-listing-events"
)
