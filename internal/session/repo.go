package session

import (
	"encoding/json"

	"github.com/tomasvidal/escriba/internal/log"
	"github.com/tomasvidal/escriba/internal/store"
)

// SlotKey names the store slot holding the session collection.
const SlotKey = "transcriptions"

// Repo holds the session collection in memory, most-recent-created-first,
// and mirrors every mutation to the store before returning. Store write
// failures are logged rather than surfaced; the in-memory state stays
// authoritative for the running process.
type Repo struct {
	store    *store.Store
	sessions []Session
}

// NewRepo loads the persisted collection. An absent or corrupt slot becomes
// an empty collection.
func NewRepo(st *store.Store) *Repo {
	r := &Repo{store: st}

	raw, ok, err := st.Load(SlotKey)
	if err != nil {
		log.Warn().Err(err).Msg("loading sessions failed, starting empty")
		return r
	}
	if !ok {
		return r
	}
	if err := json.Unmarshal([]byte(raw), &r.sessions); err != nil {
		log.Warn().Err(err).Msg("stored sessions are corrupt, starting empty")
		r.sessions = nil
	}
	return r
}

// List returns the sessions most-recent-created-first. The returned sessions
// are deep copies.
func (r *Repo) List() []Session {
	out := make([]Session, len(r.sessions))
	for i, s := range r.sessions {
		out[i] = s.Clone()
	}
	return out
}

// Get returns a deep copy of the session with the given id.
func (r *Repo) Get(id string) (Session, bool) {
	for _, s := range r.sessions {
		if s.ID == id {
			return s.Clone(), true
		}
	}
	return Session{}, false
}

// Len returns the number of sessions.
func (r *Repo) Len() int {
	return len(r.sessions)
}

// Create prepends the session and persists the collection.
func (r *Repo) Create(s Session) {
	r.sessions = append([]Session{s.Clone()}, r.sessions...)
	r.persist()
}

// Update replaces the session whose ID matches, keeping its position in the
// list. Unknown ids are a no-op.
func (r *Repo) Update(s Session) {
	for i := range r.sessions {
		if r.sessions[i].ID == s.ID {
			r.sessions[i] = s.Clone()
			r.persist()
			return
		}
	}
}

// Delete removes the session with the given id. Deleting an absent id is a
// no-op.
func (r *Repo) Delete(id string) {
	for i := range r.sessions {
		if r.sessions[i].ID == id {
			r.sessions = append(r.sessions[:i], r.sessions[i+1:]...)
			r.persist()
			return
		}
	}
}

func (r *Repo) persist() {
	data, err := json.Marshal(r.sessions)
	if err != nil {
		log.Error().Err(err).Msg("marshal sessions")
		return
	}
	if err := r.store.Save(SlotKey, string(data)); err != nil {
		log.Error().Err(err).Msg("persist sessions")
	}
}
