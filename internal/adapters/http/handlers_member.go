package web

import (
	"net/http"

	"fitwise/internal/application/orchestrators"
	"fitwise/internal/application/projections"
	"fitwise/internal/domain/advisor"
	"fitwise/internal/domain/workout"
)

type dietPlanRequest struct {
	Goal     string   `json:"goal"`
	WeightKg *float64 `json:"weight"`
	HeightCm *float64 `json:"height"`
}

type chatRequest struct {
	Messages []advisor.Message `json:"messages"`
}

type workoutCatalog struct {
	Splits       []workout.Plan `json:"splits"`
	MuscleGroups []workout.Plan `json:"muscleGroups"`
}

// handleGetMe handles GET /api/me
func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r)
	p, ok, err := s.deps.ProfileStore.GetByID(r.Context(), actor.ProfileID)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	if !ok {
		s.writeError(w, r, orchestrators.ErrProfileNotFound)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// handlePatchMe handles PATCH /api/me
func (s *Server) handlePatchMe(w http.ResponseWriter, r *http.Request) {
	s.updateProfile(w, r, actorFrom(r).ProfileID)
}

// updateProfile applies a PATCH body to profileID on behalf of the session actor.
func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request, profileID string) {
	var req profileUpdateRequest
	if err := strictDecode(w, r, &req); err != nil {
		badJSON(w, err)
		return
	}
	p, err := orchestrators.ExecuteUpdateProfile(r.Context(), orchestrators.UpdateProfileInput{
		Actor:     actorFrom(r),
		ProfileID: profileID,
		Update:    req.toUpdate(),
	}, orchestrators.UpdateProfileDeps{ProfileStore: s.deps.ProfileStore, Locks: s.deps.Locks})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// handleGetSummary handles GET /api/me/summary
func (s *Server) handleGetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := projections.QueryProfileSummary(r.Context(),
		projections.ProfileSummaryQuery{ProfileID: actorFrom(r).ProfileID},
		projections.ProfileSummaryDeps{ProfileStore: s.deps.ProfileStore, Now: s.deps.Now})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// handleSelfCheckIn handles POST /api/me/checkin
func (s *Server) handleSelfCheckIn(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r)
	p, err := orchestrators.ExecuteMarkAttendance(r.Context(),
		orchestrators.MarkAttendanceInput{Actor: actor, ProfileID: actor.ProfileID},
		s.attendanceDeps())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// handleDietPlan handles POST /api/diet-plan
func (s *Server) handleDietPlan(w http.ResponseWriter, r *http.Request) {
	var req dietPlanRequest
	if err := decodeOptional(w, r, &req); err != nil {
		badJSON(w, err)
		return
	}
	plan, err := orchestrators.ExecuteGenerateDietPlan(r.Context(), orchestrators.GenerateDietPlanInput{
		Actor:    actorFrom(r),
		Goal:     req.Goal,
		WeightKg: req.WeightKg,
		HeightCm: req.HeightCm,
	}, orchestrators.GenerateDietPlanDeps{ProfileStore: s.deps.ProfileStore})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

// handleChat handles POST /api/chat
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := strictDecode(w, r, &req); err != nil {
		badJSON(w, err)
		return
	}
	reply := orchestrators.ExecuteChat(orchestrators.ChatInput{Actor: actorFrom(r), Transcript: req.Messages},
		orchestrators.ChatDeps{Responder: s.responder, Render: renderMarkdown})
	writeJSON(w, http.StatusOK, reply)
}

// handleSafetyTips handles GET /api/safety-tips
func (s *Server) handleSafetyTips(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, advisor.SafetyTips())
}

// handleWorkouts handles GET /api/workouts
func (s *Server) handleWorkouts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, workoutCatalog{Splits: workout.Splits(), MuscleGroups: workout.MuscleGroups()})
}

func (s *Server) attendanceDeps() orchestrators.AttendanceDeps {
	return orchestrators.AttendanceDeps{ProfileStore: s.deps.ProfileStore, Locks: s.deps.Locks, Now: s.deps.Now}
}
