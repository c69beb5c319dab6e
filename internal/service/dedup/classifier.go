package dedup

import "showscout/internal/domain/event"

// Classifier thresholds. These are a product policy, deliberately
// permissive: showing the same concert twice is judged worse than the
// occasional over-merge. Changing them requires product sign-off.
const (
	strongNameEdit   = 0.70
	strongNameWords  = 0.60
	sameAreaMiles    = 5.0
	sameVenueEdit    = 0.70
	partialNameEdit  = 0.35
	partialNameWords = 0.30
	coLocatedMiles   = 0.3
	moderateNameEdit = 0.55
	moderateNameWord = 0.45
)

// isDuplicate decides whether two records describe the same real-world
// occurrence. Events on different calendar dates are never merged — a
// duplicate is the same performance, not the same tour. Given equal
// dates, three independent signals are ORed.
func isDuplicate(a, b event.Event) bool {
	if a.StartDate != b.StartDate {
		return false
	}

	nameEdit := editSimilarity(a.Name, b.Name)
	nameWords := wordSimilarity(a.Name, b.Name)
	fp := fingerprint(a.Name)
	fpMatch := fp == fingerprint(b.Name) && len(fp) > 3
	nameContains := containsOther(a.Name, b.Name)

	venueDist := geoDistanceMiles(
		a.Venue.Latitude, a.Venue.Longitude,
		b.Venue.Latitude, b.Venue.Longitude,
	)

	// Signal 1: strong name match within the same general area
	if nameEdit >= strongNameEdit || nameWords >= strongNameWords || fpMatch || nameContains {
		if venueDist <= sameAreaMiles {
			return true
		}
	}

	// Signal 2: same venue name, looser name bar
	if editSimilarity(a.Venue.Name, b.Venue.Name) >= sameVenueEdit &&
		(nameEdit >= partialNameEdit || nameWords >= partialNameWords) {
		return true
	}

	// Signal 3: essentially the same address, medium name bar
	if venueDist <= coLocatedMiles &&
		(nameEdit >= moderateNameEdit || nameWords >= moderateNameWord) {
		return true
	}

	return false
}
