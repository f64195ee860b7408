package service

import "context"

// Hour of the evening run in JST. Only that run may trigger the
// relaxed-mode fallback.
const eveningRunHourJST = 19

// CronResult reports what a scheduled ingestion pass did.
type CronResult struct {
	OK           bool   `json:"ok"`
	Registered   int    `json:"registered"`
	RelaxedAdded int    `json:"relaxedAdded"`
	CountToday   int    `json:"countToday"`
	Message      string `json:"message,omitempty"`
}

// RunScheduledFetch runs the standard pipeline and upserts every
// accepted article. On the evening run, and only if zero articles were
// created today (JST), one relaxed-mode fetch guarantees at least one
// article per day. Best-effort content SLA, not a correctness
// guarantee.
func (s *Service) RunScheduledFetch(ctx context.Context) (CronResult, error) {
	if !s.articles.Available() {
		return CronResult{OK: true, Message: "store not configured, skip"}, nil
	}

	fresh, err := s.buildHappyNews(ctx, 10)
	if err != nil {
		return CronResult{}, err
	}
	registered := 0
	for i := range fresh {
		if err := s.articles.Upsert(ctx, &fresh[i]); err != nil {
			s.logger.Warn("cron upsert failed", "id", fresh[i].ID, "err", err)
			continue
		}
		registered++
	}

	countToday, err := s.articles.CountCreatedToday(ctx, s.now())
	if err != nil {
		return CronResult{}, err
	}

	relaxedAdded := 0
	if countToday == 0 && s.jstHour() == eveningRunHourJST {
		relaxed, err := s.GetHappyNewsRelaxed(ctx, 1)
		if err != nil {
			return CronResult{}, err
		}
		for i := range relaxed {
			if err := s.articles.Upsert(ctx, &relaxed[i]); err != nil {
				s.logger.Warn("cron relaxed upsert failed", "id", relaxed[i].ID, "err", err)
				continue
			}
			relaxedAdded++
		}
	}

	return CronResult{
		OK:           true,
		Registered:   registered,
		RelaxedAdded: relaxedAdded,
		CountToday:   countToday + relaxedAdded,
	}, nil
}

func (s *Service) jstHour() int {
	return (s.now().UTC().Hour() + 9) % 24
}
