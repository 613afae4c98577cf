package services

// Services defined in this package:
// - AuthService: registration, login and token lifecycle
// - UserService: profile reads and updates
// - DistrictService: district autocomplete lookups
// - SchoolService: school and institute management
// - ListingService: listings, their items and the nearby filter
// - MatchService: the donation workflow state machine
// - DonationService: the append-only donation record
