package contact

// MatchField names the field that triggered a duplicate hit.
type MatchField string

const (
	MatchNone   MatchField = ""
	MatchName   MatchField = "name"
	MatchEmail  MatchField = "email"
	MatchMobile MatchField = "mobile"
)

// DedupeOptions configure duplicate detection.
type DedupeOptions struct {
	// Normalize is applied to name and email before comparison.
	// Mobile is compared raw (digits don't fold). Nil means Fold.
	Normalize Normalizer
	// SkipEmpty exempts empty candidate fields from matching. The
	// reference behavior (false) treats two empty emails as equal, which
	// is coarse: every no-email contact collides with every other.
	SkipEmpty bool
}

// Detector decides whether a candidate record already exists in a snapshot.
type Detector struct {
	opts DedupeOptions
}

// NewDetector builds a Detector with the given options.
func NewDetector(opts DedupeOptions) *Detector {
	if opts.Normalize == nil {
		opts.Normalize = Fold
	}
	return &Detector{opts: opts}
}

// IsDuplicate reports whether candidate collides with any existing record.
func (d *Detector) IsDuplicate(candidate Record, existing []Record) bool {
	_, field := d.FindDuplicate(candidate, existing)
	return field != MatchNone
}

// FindDuplicate returns the index of the first colliding record and the
// field that matched. A candidate collides when any single field matches:
// case-folded name, case-folded email, or raw-equal mobile. The first hit
// short-circuits; there is no ranking among multiple matches.
func (d *Detector) FindDuplicate(candidate Record, existing []Record) (int, MatchField) {
	name := d.opts.Normalize(candidate.Name)
	email := d.opts.Normalize(candidate.Email)

	for i, r := range existing {
		if d.matchable(name) && d.opts.Normalize(r.Name) == name {
			return i, MatchName
		}
		if d.matchable(email) && d.opts.Normalize(r.Email) == email {
			return i, MatchEmail
		}
		if d.matchable(candidate.Mobile) && r.Mobile == candidate.Mobile {
			return i, MatchMobile
		}
	}
	return -1, MatchNone
}

func (d *Detector) matchable(v string) bool {
	return v != "" || !d.opts.SkipEmpty
}
