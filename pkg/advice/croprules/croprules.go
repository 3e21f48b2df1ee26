// Package croprules maps soil composition to candidate crops. It is a pure
// function: rule order matters because a later rule may replace the
// rationale of an already-added crop without moving it from its original
// position.
package croprules

import "sfa/entities"

type Recommendation struct {
	Crop  string `json:"crop"`
	WhyBN string `json:"why_bn"`
}

const maxRecommendations = 5

func Recommend(soil entities.SoilProperties) []Recommendation {
	items := newOrderedSet()
	ph, clay, sand := soil.PH, soil.Clay, soil.Sand

	if ph != nil && *ph >= 6 && *ph <= 7 {
		items.set("Rice", "pH ৬-৭ হওয়ায় ধান ভালো ফলন দিতে পারে")
		items.set("Wheat", "pH ৬-৭ রেঞ্জে গম ভালোভাবে বৃদ্ধি পায়")
	}

	if clay != nil && *clay >= 40 {
		items.set("Rice", "মাটিতে কাদামাটি বেশি, তাই ধানের জন্য পানি ধরে রাখতে সুবিধা হবে")
	}

	if sand != nil && *sand >= 50 {
		items.set("Groundnut", "বালির পরিমাণ বেশি হওয়ায় বাদামের শিকড় সহজে বৃদ্ধি পাবে")
	}

	if ph != nil && *ph < 6 {
		items.set("Potato", "মাটি সামান্য অম্লীয় হওয়ায় আলুর জন্য উপযুক্ত")
	}

	if items.len() == 0 {
		items.set("Rice", "মাটির প্রোফাইল অনুযায়ী ধান একটি নিরাপদ পছন্দ")
		items.set("Wheat", "মাটির সাধারণ উর্বরতা অনুযায়ী গমও বিবেচ্য")
	}

	return items.take(maxRecommendations)
}

// orderedSet is insertion-ordered with overwrite-in-place on duplicate keys.
type orderedSet struct {
	order []string
	why   map[string]string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{why: map[string]string{}}
}

func (s *orderedSet) set(crop, whyBN string) {
	if _, ok := s.why[crop]; !ok {
		s.order = append(s.order, crop)
	}
	s.why[crop] = whyBN
}

func (s *orderedSet) len() int { return len(s.order) }

func (s *orderedSet) take(n int) []Recommendation {
	if n > len(s.order) {
		n = len(s.order)
	}
	out := make([]Recommendation, 0, n)
	for _, crop := range s.order[:n] {
		out = append(out, Recommendation{Crop: crop, WhyBN: s.why[crop]})
	}
	return out
}
