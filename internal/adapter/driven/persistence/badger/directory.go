package badger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Wyydra/huddle/internal/core/domain"
	"github.com/dgraph-io/badger/v4"
)

const (
	meetingPrefix           = "meeting:"
	participantPrefix       = "participant:"
	participantMeetingIndex = "participant-meeting:"
)

// Directory persists meetings and participants in BadgerDB. Participants are
// keyed under their meeting so a meeting's roster is a single prefix scan.
type Directory struct {
	db *badger.DB
}

func NewDirectory(db *badger.DB) *Directory {
	return &Directory{db: db}
}

// Open opens (or creates) a badger store at path.
func Open(path string) (*badger.DB, error) {
	db, err := badger.Open(badger.DefaultOptions(path).WithLoggingLevel(badger.WARNING))
	if err != nil {
		return nil, fmt.Errorf("open badger at %s: %w", path, err)
	}
	return db, nil
}

type diskMeeting struct {
	ID           string    `json:"id"`
	PasswordHash string    `json:"passwordHash"`
	HostID       string    `json:"hostId"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"createdAt"`
}

type diskParticipant struct {
	ID        string `json:"id"`
	MeetingID string `json:"meetingId"`
	Name      string `json:"name"`
	IsHost    bool   `json:"isHost"`
}

func meetingKey(id domain.MeetingID) []byte {
	return []byte(meetingPrefix + id.String())
}

func participantKey(meetingID domain.MeetingID, id domain.ParticipantID) []byte {
	return []byte(participantPrefix + meetingID.String() + ":" + id.String())
}

func rosterPrefix(meetingID domain.MeetingID) []byte {
	return []byte(participantPrefix + meetingID.String() + ":")
}

func indexKey(id domain.ParticipantID) []byte {
	return []byte(participantMeetingIndex + id.String())
}

func (d *Directory) CreateMeeting(ctx context.Context, m domain.Meeting) error {
	data, err := json.Marshal(toDiskMeeting(m))
	if err != nil {
		return fmt.Errorf("marshal meeting: %w", err)
	}
	return d.db.Update(func(txn *badger.Txn) error {
		key := meetingKey(m.ID)
		if _, err := txn.Get(key); err == nil {
			return domain.ErrMeetingExists
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return txn.Set(key, data)
	})
}

func (d *Directory) GetMeeting(ctx context.Context, id domain.MeetingID) (domain.Meeting, error) {
	var m domain.Meeting
	err := d.db.View(func(txn *badger.Txn) error {
		var err error
		m, err = getMeeting(txn, id)
		return err
	})
	return m, err
}

func (d *Directory) DeactivateMeeting(ctx context.Context, id domain.MeetingID) error {
	return d.db.Update(func(txn *badger.Txn) error {
		m, err := getMeeting(txn, id)
		if err != nil {
			return err
		}
		m.Active = false
		data, err := json.Marshal(toDiskMeeting(m))
		if err != nil {
			return fmt.Errorf("marshal meeting: %w", err)
		}
		return txn.Set(meetingKey(id), data)
	})
}

func (d *Directory) AddParticipant(ctx context.Context, p domain.Participant) error {
	data, err := json.Marshal(diskParticipant{
		ID:        p.ID.String(),
		MeetingID: p.MeetingID.String(),
		Name:      p.Name,
		IsHost:    p.IsHost,
	})
	if err != nil {
		return fmt.Errorf("marshal participant: %w", err)
	}
	return d.db.Update(func(txn *badger.Txn) error {
		if _, err := getMeeting(txn, p.MeetingID); err != nil {
			return err
		}
		if err := txn.Set(participantKey(p.MeetingID, p.ID), data); err != nil {
			return err
		}
		return txn.Set(indexKey(p.ID), []byte(p.MeetingID.String()))
	})
}

func (d *Directory) GetParticipant(ctx context.Context, id domain.ParticipantID) (domain.Participant, error) {
	var p domain.Participant
	err := d.db.View(func(txn *badger.Txn) error {
		meetingID, err := participantMeeting(txn, id)
		if err != nil {
			return err
		}
		item, err := txn.Get(participantKey(meetingID, id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return domain.ErrParticipantNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			p, err = decodeParticipant(val)
			return err
		})
	})
	return p, err
}

func (d *Directory) GetParticipants(ctx context.Context, meetingID domain.MeetingID) ([]domain.Participant, error) {
	participants := make([]domain.Participant, 0)
	err := d.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = rosterPrefix(meetingID)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				p, err := decodeParticipant(val)
				if err != nil {
					return err
				}
				participants = append(participants, p)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return participants, nil
}

func (d *Directory) RemoveParticipant(ctx context.Context, id domain.ParticipantID) error {
	return d.db.Update(func(txn *badger.Txn) error {
		meetingID, err := participantMeeting(txn, id)
		if errors.Is(err, domain.ErrParticipantNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := txn.Delete(participantKey(meetingID, id)); err != nil {
			return err
		}
		return txn.Delete(indexKey(id))
	})
}

func (d *Directory) RemoveParticipants(ctx context.Context, meetingID domain.MeetingID) error {
	return d.db.Update(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = rosterPrefix(meetingID)
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)

		var keys [][]byte
		var ids []domain.ParticipantID
		prefixLen := len(opts.Prefix)
		for it.Rewind(); it.Valid(); it.Next() {
			key := it.Item().KeyCopy(nil)
			keys = append(keys, key)
			ids = append(ids, domain.ParticipantID(key[prefixLen:]))
		}
		it.Close()

		for i, key := range keys {
			if err := txn.Delete(key); err != nil {
				return err
			}
			if err := txn.Delete(indexKey(ids[i])); err != nil {
				return err
			}
		}
		return nil
	})
}

func getMeeting(txn *badger.Txn, id domain.MeetingID) (domain.Meeting, error) {
	item, err := txn.Get(meetingKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return domain.Meeting{}, domain.ErrMeetingNotFound
	}
	if err != nil {
		return domain.Meeting{}, err
	}

	var dm diskMeeting
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &dm)
	}); err != nil {
		return domain.Meeting{}, fmt.Errorf("decode meeting %s: %w", id, err)
	}
	return domain.Meeting{
		ID:           domain.MeetingID(dm.ID),
		PasswordHash: dm.PasswordHash,
		HostID:       domain.HostID(dm.HostID),
		Active:       dm.Active,
		CreatedAt:    dm.CreatedAt.UTC(),
	}, nil
}

func participantMeeting(txn *badger.Txn, id domain.ParticipantID) (domain.MeetingID, error) {
	item, err := txn.Get(indexKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", domain.ErrParticipantNotFound
	}
	if err != nil {
		return "", err
	}
	val, err := item.ValueCopy(nil)
	if err != nil {
		return "", err
	}
	return domain.MeetingID(val), nil
}

func toDiskMeeting(m domain.Meeting) diskMeeting {
	return diskMeeting{
		ID:           m.ID.String(),
		PasswordHash: m.PasswordHash,
		HostID:       m.HostID.String(),
		Active:       m.Active,
		CreatedAt:    m.CreatedAt,
	}
}

func decodeParticipant(val []byte) (domain.Participant, error) {
	var dp diskParticipant
	if err := json.Unmarshal(val, &dp); err != nil {
		return domain.Participant{}, fmt.Errorf("decode participant: %w", err)
	}
	return domain.Participant{
		ID:        domain.ParticipantID(dp.ID),
		MeetingID: domain.MeetingID(dp.MeetingID),
		Name:      dp.Name,
		IsHost:    dp.IsHost,
	}, nil
}
