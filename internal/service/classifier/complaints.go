package classifier

import (
	"sort"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// ComplaintBuckets активные и закрытые жалобы, новые первыми
type ComplaintBuckets struct {
	Active   []*domain.Complaint
	Resolved []*domain.Complaint
}

func ClassifyComplaints(complaints []*domain.Complaint) ComplaintBuckets {
	buckets := ComplaintBuckets{
		Active:   []*domain.Complaint{},
		Resolved: []*domain.Complaint{},
	}

	for _, c := range complaints {
		if c == nil {
			continue
		}
		if c.IsResolved() {
			buckets.Resolved = append(buckets.Resolved, c)
		} else {
			buckets.Active = append(buckets.Active, c)
		}
	}

	sortByCreatedDesc(buckets.Active)
	sortByCreatedDesc(buckets.Resolved)

	return buckets
}

func sortByCreatedDesc(list []*domain.Complaint) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
}
