package service

import (
	"context"
	"strconv"

	"courtly/internal/scheduling/repository"
	"courtly/pkg/config"
	apperrors "courtly/pkg/errors"
	"courtly/pkg/kafka"
	"courtly/pkg/logger"

	"go.mongodb.org/mongo-driver/mongo"
)

// PublicationResult reports what one publish run changed.
type PublicationResult struct {
	Published         int   `json:"published"`
	PublishedClosures int   `json:"published_closures"`
	Deleted           int   `json:"deleted"`
	DataVersion       int64 `json:"data_version"`
}

// PublicationService atomically flips every staged change to its
// customer-visible form: drafts become published, staged deletions are
// executed, unpublished closures go live. Slots outside working hours are
// never touched.
type PublicationService struct {
	cfg      *config.Config
	log      *logger.Logger
	slots    repository.SlotRepository
	closures repository.ClosureRepository
	settings repository.SettingsRepository
	emitter  *kafka.Emitter
}

func NewPublicationService(
	cfg *config.Config,
	slots repository.SlotRepository,
	closures repository.ClosureRepository,
	settings repository.SettingsRepository,
	emitter *kafka.Emitter,
) *PublicationService {
	return &PublicationService{
		cfg:      cfg,
		log:      cfg.Log,
		slots:    slots,
		closures: closures,
		settings: settings,
		emitter:  emitter,
	}
}

// PublishAll runs the whole publication in a single transaction so customers
// never observe a partially applied batch. Calling it with nothing staged is
// a no-op returning zero counts and the unchanged data version, which makes
// retries safe.
func (s *PublicationService) PublishAll(ctx context.Context) (*PublicationResult, error) {
	result := &PublicationResult{}

	err := s.slots.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		deletedSlots, err := s.slots.DeletePendingDeletion(sessCtx)
		if err != nil {
			return err
		}
		deletedClosures, err := s.closures.DeletePendingDeletion(sessCtx)
		if err != nil {
			return err
		}

		published, err := s.slots.PublishDrafts(sessCtx)
		if err != nil {
			return err
		}
		publishedClosures, err := s.closures.PublishUnpublished(sessCtx)
		if err != nil {
			return err
		}

		result.Published = int(published)
		result.PublishedClosures = int(publishedClosures)
		result.Deleted = int(deletedSlots + deletedClosures)

		// An empty run must not move the version: pollers would refetch an
		// unchanged dataset.
		if result.Published == 0 && result.PublishedClosures == 0 && result.Deleted == 0 {
			settings, err := s.settings.Get(sessCtx)
			if err != nil {
				return err
			}
			result.DataVersion = settings.DataVersion
			return nil
		}

		version, err := s.settings.IncrementDataVersion(sessCtx)
		if err != nil {
			return err
		}
		result.DataVersion = version
		return nil
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		return nil, apperrors.Internal("publication failed", err)
	}

	s.log.Info("Publication completed",
		"published", result.Published,
		"published_closures", result.PublishedClosures,
		"deleted", result.Deleted,
		"data_version", result.DataVersion,
	)

	if result.Published > 0 || result.PublishedClosures > 0 || result.Deleted > 0 {
		s.emitter.Emit(ctx, strconv.FormatInt(result.DataVersion, 10), kafka.EventTypeSlotsPublished, kafka.SlotsPublishedEvent{
			Published:         result.Published,
			PublishedClosures: result.PublishedClosures,
			Deleted:           result.Deleted,
			DataVersion:       result.DataVersion,
		})
	}

	return result, nil
}

// PendingChanges reports how much a publish run would touch, for the
// operator's confirmation dialog.
type PendingChanges struct {
	Drafts int64 `json:"drafts"`
}

func (s *PublicationService) Pending(ctx context.Context) (*PendingChanges, error) {
	drafts, err := s.slots.CountDrafts(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to count pending changes", err)
	}
	return &PendingChanges{Drafts: drafts}, nil
}
