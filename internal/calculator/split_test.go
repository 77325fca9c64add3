package calculator

import (
	"math"
	"testing"

	"tripledger/internal/models"
)

func TestBuildShares(t *testing.T) {
	tests := []struct {
		name         string
		total        float64
		policy       models.SplitPolicy
		memberIDs    []string
		shares       []models.Participant
		wantErr      bool
		validateFunc func(t *testing.T, participants []models.Participant)
	}{
		{
			name:      "equal split among three",
			total:     90.0,
			policy:    models.SplitEqual,
			memberIDs: []string{"alice", "bob", "charlie"},
			validateFunc: func(t *testing.T, participants []models.Participant) {
				if len(participants) != 3 {
					t.Fatalf("expected 3 participants, got %d", len(participants))
				}
				for _, p := range participants {
					if math.Abs(p.Share-30.0) > 0.01 {
						t.Errorf("%s share = %v, want 30.0", p.UserID, p.Share)
					}
					if p.Settled {
						t.Errorf("%s should not start settled", p.UserID)
					}
				}
			},
		},
		{
			name:      "equal split that does not divide evenly",
			total:     100.0,
			policy:    models.SplitEqual,
			memberIDs: []string{"alice", "bob", "charlie"},
			validateFunc: func(t *testing.T, participants []models.Participant) {
				var sum float64
				for _, p := range participants {
					sum += p.Share
				}
				// The residual is accepted as-is, not pushed onto one member.
				if math.Abs(sum-100.0) > ShareTolerance {
					t.Errorf("shares sum to %v, want within %v of 100", sum, ShareTolerance)
				}
				for _, p := range participants {
					if math.Abs(p.Share-participants[0].Share) > 1e-9 {
						t.Errorf("shares differ: %v vs %v", p.Share, participants[0].Share)
					}
				}
			},
		},
		{
			name:    "equal split with no members should error",
			total:   50.0,
			policy:  models.SplitEqual,
			wantErr: true,
		},
		{
			name:   "custom shares pass through",
			total:  100.0,
			policy: models.SplitCustom,
			shares: []models.Participant{
				{UserID: "alice", Share: 70.0},
				{UserID: "bob", Share: 30.0},
			},
			validateFunc: func(t *testing.T, participants []models.Participant) {
				if len(participants) != 2 {
					t.Fatalf("expected 2 participants, got %d", len(participants))
				}
				if participants[0].Share != 70.0 || participants[1].Share != 30.0 {
					t.Errorf("custom shares changed: %+v", participants)
				}
			},
		},
		{
			name:   "individual shares pass through even when unbalanced",
			total:  100.0,
			policy: models.SplitIndividual,
			shares: []models.Participant{
				{UserID: "alice", Share: 10.0},
			},
			validateFunc: func(t *testing.T, participants []models.Participant) {
				// The calculator never validates; that is the validator's job.
				if len(participants) != 1 || participants[0].Share != 10.0 {
					t.Errorf("unexpected participants: %+v", participants)
				}
			},
		},
		{
			name:    "unknown policy should error",
			total:   10.0,
			policy:  models.SplitPolicy("percentage"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			participants, err := BuildShares(tt.total, tt.policy, tt.memberIDs, tt.shares)
			if (err != nil) != tt.wantErr {
				t.Errorf("BuildShares() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && tt.validateFunc != nil {
				tt.validateFunc(t, participants)
			}
		})
	}
}
