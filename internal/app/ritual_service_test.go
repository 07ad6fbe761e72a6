package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/jsamuelsen/ritual-service/internal/domain"
	"github.com/jsamuelsen/ritual-service/internal/mocks"
	"github.com/jsamuelsen/ritual-service/internal/ports"
)

type ritualMocks struct {
	gen     *mocks.MockContentGenerator
	results *mocks.MockResultRepository
	flags   *mocks.MockFeatureFlags
}

func newRitualService(t *testing.T) (*RitualService, ritualMocks) {
	t.Helper()

	m := ritualMocks{
		gen:     mocks.NewMockContentGenerator(t),
		results: mocks.NewMockResultRepository(t),
		flags:   mocks.NewMockFeatureFlags(t),
	}

	svc := NewRitualService(RitualServiceConfig{
		Prompts:   testPrompts(t),
		Generator: m.gen,
		Results:   m.results,
		Flags:     m.flags,
		Clock:     fixedClock{fixedNow},
		Logger:    testLogger(),
	})

	return svc, m
}

func isSigilRequest(req domain.ImageRequest) bool {
	return req.Size == domain.ImageSizeSquare
}

func TestNewRitualService_PanicsWithoutDependencies(t *testing.T) {
	assert.Panics(t, func() {
		NewRitualService(RitualServiceConfig{Logger: testLogger()})
	})
}

func TestRitualService_Generate(t *testing.T) {
	defer goleak.VerifyNone(t)

	svc, m := newRitualService(t)

	m.gen.EXPECT().GenerateRitual(mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, "Leo")
	})).Return(testRitual(), nil)
	m.flags.EXPECT().IsEnabled(mock.Anything, ports.FlagSigilImages, true).Return(true)
	m.gen.EXPECT().GenerateImage(mock.Anything, mock.MatchedBy(func(r domain.ImageRequest) bool {
		return r.Size == domain.ImageSizePortrait && strings.Contains(r.Prompt, "The Star")
	})).Return("https://img/star.png", nil)
	m.gen.EXPECT().GenerateImage(mock.Anything, mock.MatchedBy(func(r domain.ImageRequest) bool {
		return r.Size == domain.ImageSizePortrait && strings.Contains(r.Prompt, "Ace of Pentacles")
	})).Return("https://img/ace.png", nil)
	m.gen.EXPECT().GenerateImage(mock.Anything, mock.MatchedBy(isSigilRequest)).
		Return("https://img/sigil.png", nil)

	ritual, err := svc.Generate(context.Background(), testSubmission(t))
	require.NoError(t, err)

	assert.Equal(t, domain.SignLeo, ritual.SunSign)
	assert.Equal(t, domain.ElementFire, ritual.Element)
	assert.Equal(t, "https://img/star.png", ritual.Tarot.Card1.ImageURL)
	assert.Equal(t, "https://img/ace.png", ritual.Tarot.Card2.ImageURL)
	require.NotNil(t, ritual.Sigil)
	assert.Equal(t, "https://img/sigil.png", ritual.Sigil.ImageURL)
}

func TestRitualService_Generate_ImageFailuresDegrade(t *testing.T) {
	svc, m := newRitualService(t)

	m.gen.EXPECT().GenerateRitual(mock.Anything, mock.Anything).Return(testRitual(), nil)
	m.flags.EXPECT().IsEnabled(mock.Anything, ports.FlagSigilImages, true).Return(true)
	m.gen.EXPECT().GenerateImage(mock.Anything, mock.Anything).Return("", errors.New("rate limited"))

	ritual, err := svc.Generate(context.Background(), testSubmission(t))
	require.NoError(t, err)

	assert.Empty(t, ritual.Tarot.Card1.ImageURL)
	assert.Empty(t, ritual.Tarot.Card2.ImageURL)
	require.NotNil(t, ritual.Sigil)
	assert.Empty(t, ritual.Sigil.ImageURL)
}

func TestRitualService_Generate_NoSigilWithoutImagery(t *testing.T) {
	svc, m := newRitualService(t)
	sub := testSubmission(t)
	sub.Aesthetic = domain.AestheticNoImage

	r := testRitual()
	r.Tarot.Card2.Name = ""

	m.gen.EXPECT().GenerateRitual(mock.Anything, mock.Anything).Return(r, nil)
	m.gen.EXPECT().GenerateImage(mock.Anything, mock.Anything).Return("https://img/star.png", nil).Once()

	ritual, err := svc.Generate(context.Background(), sub)
	require.NoError(t, err)

	assert.Nil(t, ritual.Sigil)
	assert.Equal(t, "https://img/star.png", ritual.Tarot.Card1.ImageURL)
}

func TestRitualService_Generate_SigilFlagOff(t *testing.T) {
	svc, m := newRitualService(t)

	m.gen.EXPECT().GenerateRitual(mock.Anything, mock.Anything).Return(testRitual(), nil)
	m.flags.EXPECT().IsEnabled(mock.Anything, ports.FlagSigilImages, true).Return(false)
	m.gen.EXPECT().GenerateImage(mock.Anything, mock.Anything).Return("u", nil).Twice()

	ritual, err := svc.Generate(context.Background(), testSubmission(t))
	require.NoError(t, err)
	assert.Nil(t, ritual.Sigil)
}

func TestRitualService_Generate_TextFailure(t *testing.T) {
	svc, m := newRitualService(t)

	m.gen.EXPECT().GenerateRitual(mock.Anything, mock.Anything).
		Return(nil, domain.NewUnavailableError("openai", "circuit open"))

	_, err := svc.Generate(context.Background(), testSubmission(t))
	require.Error(t, err)
	assert.True(t, domain.IsUnavailable(err))
}

func TestRitualService_Submit(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(m ritualMocks, sub *domain.Submission)
		wantID     string
		errCheck   func(error) bool
		wantRitual bool
	}{
		{
			name: "disabled flag is forbidden",
			setup: func(m ritualMocks, _ *domain.Submission) {
				m.flags.EXPECT().IsEnabled(mock.Anything, ports.FlagDirectSubmit, false).Return(false)
			},
			errCheck: domain.IsForbidden,
		},
		{
			name: "terms not accepted",
			setup: func(m ritualMocks, sub *domain.Submission) {
				sub.TermsAccepted = false
				m.flags.EXPECT().IsEnabled(mock.Anything, ports.FlagDirectSubmit, false).Return(true)
			},
			errCheck: domain.IsValidation,
		},
		{
			name: "stores result",
			setup: func(m ritualMocks, sub *domain.Submission) {
				sub.Aesthetic = domain.AestheticNoImage
				m.flags.EXPECT().IsEnabled(mock.Anything, ports.FlagDirectSubmit, false).Return(true)
				m.gen.EXPECT().GenerateRitual(mock.Anything, mock.Anything).Return(&domain.Ritual{}, nil)
				m.results.EXPECT().Save(mock.Anything, mock.MatchedBy(func(r *domain.Result) bool {
					return r.Email == "luna@example.com" && r.CreatedAt.Equal(fixedNow)
				})).Return("res-1", nil)
			},
			wantID:     "res-1",
			wantRitual: true,
		},
		{
			name: "save failure still returns ritual",
			setup: func(m ritualMocks, sub *domain.Submission) {
				sub.Aesthetic = domain.AestheticNoImage
				m.flags.EXPECT().IsEnabled(mock.Anything, ports.FlagDirectSubmit, false).Return(true)
				m.gen.EXPECT().GenerateRitual(mock.Anything, mock.Anything).Return(&domain.Ritual{}, nil)
				m.results.EXPECT().Save(mock.Anything, mock.Anything).Return("", errors.New("throttled"))
			},
			wantRitual: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newRitualService(t)
			sub := testSubmission(t)
			tt.setup(m, sub)

			res, err := svc.Submit(context.Background(), sub)

			if tt.errCheck != nil {
				require.Error(t, err)
				assert.True(t, tt.errCheck(err), "unexpected error: %v", err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantID, res.ResultID)
			assert.Equal(t, tt.wantRitual, res.Ritual != nil)
		})
	}
}

func TestRitualService_GetResult(t *testing.T) {
	svc, m := newRitualService(t)

	_, err := svc.GetResult(context.Background(), "")
	assert.True(t, domain.IsValidation(err))

	m.results.EXPECT().Get(mock.Anything, "missing").Return(nil, domain.NewNotFoundError("result", "missing"))

	_, err = svc.GetResult(context.Background(), "missing")
	assert.True(t, domain.IsNotFound(err))
}
