package owner

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"myvet/internal/apiclient"
	"myvet/internal/petcache"
	"myvet/internal/platform/kvstore"
	"myvet/internal/platform/logger"
	"myvet/internal/result"
)

type Mode string

const (
	// ModeRemote: el backend manda; el caché es read-through para offline.
	ModeRemote Mode = "remote"
	// ModeDualWrite: escribe local primero y al backend en segundo plano.
	// Si el backend falla, la mascota queda solo en el caché (sin reconciliar).
	ModeDualWrite Mode = "dual-write"
)

var ErrPetNotFound = errors.New("owner: pet not found")

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeRemote:
		return ModeRemote, nil
	case ModeDualWrite:
		return ModeDualWrite, nil
	default:
		return "", fmt.Errorf("owner: unknown pet mode %q", s)
	}
}

// PetRemote es la parte del Repository que usa PetService.
type PetRemote interface {
	ListPets(ctx context.Context) result.Result[[]Pet]
	CreatePet(ctx context.Context, in PetInput) result.Result[Pet]
	UpdatePet(ctx context.Context, id string, patch PetPatch) result.Result[Pet]
	DeletePet(ctx context.Context, id string) result.Result[bool]
}

// PetList: Stale indica que viene del caché porque el backend no respondió.
type PetList struct {
	Pets  []Pet
	Stale bool
}

type PetService struct {
	remote PetRemote
	cache  *petcache.Cache[Pet]
	mode   Mode
	log    logger.Logger
	newID  func() string

	wg sync.WaitGroup
}

func NewPetService(remote PetRemote, kv kvstore.Store, mode Mode, log logger.Logger) *PetService {
	if mode == "" {
		mode = ModeRemote
	}
	log = logger.OrNop(log).With(map[string]any{"component": "pets", "mode": string(mode)})
	return &PetService{
		remote: remote,
		cache:  petcache.New(kv, petcache.DefaultKey, func(p Pet) string { return p.ID }, log),
		mode:   mode,
		log:    log,
		newID:  uuid.NewString,
	}
}

func (s *PetService) Mode() Mode { return s.mode }

// Cached devuelve lo que hay en el almacén local, sin red.
func (s *PetService) Cached(ctx context.Context) []Pet {
	return s.cache.List(ctx)
}

func (s *PetService) ListPets(ctx context.Context) result.Result[PetList] {
	if s.mode == ModeDualWrite {
		return result.Ok(PetList{Pets: s.cache.List(ctx)})
	}

	res := s.remote.ListPets(ctx)
	pets, err := res.Unwrap()
	if err != nil {
		if apiclient.Classify(err) == apiclient.KindTransport {
			s.log.Warn("backend unreachable, serving cached pets", map[string]any{"error": err})
			return result.Ok(PetList{Pets: s.cache.List(ctx), Stale: true})
		}
		return result.Fail[PetList](err)
	}
	if pets == nil {
		pets = []Pet{}
	}
	if err := s.cache.Replace(ctx, pets); err != nil {
		s.log.Warn("cache refresh failed", map[string]any{"error": err})
	}
	return result.Ok(PetList{Pets: pets})
}

func (s *PetService) CreatePet(ctx context.Context, in PetInput) result.Result[Pet] {
	in = in.normalize()
	if err := in.validate(); err != nil {
		return result.Fail[Pet](err)
	}

	if s.mode == ModeDualWrite {
		pet := Pet{
			ID:        s.newID(),
			Name:      in.Name,
			Species:   in.Species,
			Breed:     in.Breed,
			BirthDate: in.BirthDate,
			Sex:       in.Sex,
		}
		if err := s.cache.Add(ctx, pet); err != nil {
			return result.Fail[Pet](fmt.Errorf("owner: cache pet: %w", err))
		}
		s.background(ctx, "create", pet.ID, func(ctx context.Context) error {
			return s.remote.CreatePet(ctx, in).Err()
		})
		return result.Ok(pet)
	}

	res := s.remote.CreatePet(ctx, in)
	if pet, err := res.Unwrap(); err == nil {
		if err := s.cache.Add(ctx, pet); err != nil {
			s.log.Warn("cache add failed", map[string]any{"pet_id": pet.ID, "error": err})
		}
	}
	return res
}

func (s *PetService) UpdatePet(ctx context.Context, id string, patch PetPatch) result.Result[Pet] {
	if s.mode == ModeDualWrite {
		cur, ok := s.cache.GetByID(ctx, id)
		if !ok {
			return result.Fail[Pet](ErrPetNotFound)
		}
		pet := patch.Apply(cur)
		if _, err := s.cache.Update(ctx, pet); err != nil {
			return result.Fail[Pet](fmt.Errorf("owner: cache pet: %w", err))
		}
		s.background(ctx, "update", id, func(ctx context.Context) error {
			return s.remote.UpdatePet(ctx, id, patch).Err()
		})
		return result.Ok(pet)
	}

	res := s.remote.UpdatePet(ctx, id, patch)
	if pet, err := res.Unwrap(); err == nil {
		if _, err := s.cache.Update(ctx, pet); err != nil {
			s.log.Warn("cache update failed", map[string]any{"pet_id": pet.ID, "error": err})
		}
	}
	return res
}

func (s *PetService) DeletePet(ctx context.Context, id string) result.Result[bool] {
	if s.mode == ModeDualWrite {
		if err := s.cache.Remove(ctx, id); err != nil {
			return result.Fail[bool](fmt.Errorf("owner: cache pet: %w", err))
		}
		s.background(ctx, "delete", id, func(ctx context.Context) error {
			return s.remote.DeletePet(ctx, id).Err()
		})
		return result.Ok(true)
	}

	res := s.remote.DeletePet(ctx, id)
	if res.IsOk() {
		if err := s.cache.Remove(ctx, id); err != nil {
			s.log.Warn("cache remove failed", map[string]any{"pet_id": id, "error": err})
		}
	}
	return res
}

// background lanza la escritura remota sin bloquear. La falla se registra
// y se descarta.
func (s *PetService) background(ctx context.Context, op, id string, fn func(context.Context) error) {
	bg := context.WithoutCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := fn(bg); err != nil {
			s.log.Warn("remote pet write failed, kept local copy", map[string]any{
				"op":     op,
				"pet_id": id,
				"error":  err,
			})
			return
		}
		s.log.Debug("remote pet write ok", map[string]any{"op": op, "pet_id": id})
	}()
}

// Wait bloquea hasta que terminen las escrituras en segundo plano.
func (s *PetService) Wait() {
	s.wg.Wait()
}
