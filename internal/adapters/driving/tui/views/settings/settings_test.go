package settings

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/areflesh/text-annot/internal/adapters/driving/tui/messages"
	"github.com/areflesh/text-annot/internal/adapters/driving/tui/styles"
	"github.com/areflesh/text-annot/internal/core/domain"
)

// MockSettingsService is a mock implementation of driving.SettingsService.
type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) Get() (*domain.AppSettings, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AppSettings), args.Error(1)
}

func (m *MockSettingsService) Save(settings *domain.AppSettings) error {
	args := m.Called(settings)
	return args.Error(0)
}

func (m *MockSettingsService) Set(key, value string) error {
	args := m.Called(key, value)
	return args.Error(0)
}

func (m *MockSettingsService) Keys() []string {
	args := m.Called()
	return args.Get(0).([]string)
}

func (m *MockSettingsService) GetDefaults() domain.AppSettings {
	args := m.Called()
	return args.Get(0).(domain.AppSettings)
}

func (m *MockSettingsService) ConfigPath() string {
	args := m.Called()
	return args.String(0)
}

func testSettings() *domain.AppSettings {
	s := domain.DefaultAppSettings()
	return &s
}

func loadedView(t *testing.T, svc *MockSettingsService) *View {
	t.Helper()
	svc.On("Get").Return(testSettings(), nil)
	svc.On("ConfigPath").Return("/home/u/.textannot/config.toml").Maybe()

	v := NewView(styles.DefaultStyles(), svc)
	v.SetDimensions(100, 30)
	v.Update(v.Init()())
	require.NotNil(t, v.Settings())
	return v
}

func press(v *View, msg tea.Msg) tea.Cmd {
	_, cmd := v.Update(msg)
	return cmd
}

func TestNewView(t *testing.T) {
	v := NewView(nil, nil)

	require.NotNil(t, v)
	assert.NotNil(t, v.styles)
	assert.Nil(t, v.Settings())
	assert.False(t, v.Editing())
}

func TestView_LoadWithoutService(t *testing.T) {
	v := NewView(nil, nil)

	v.Update(v.Init()())

	assert.Error(t, v.err)
	assert.Contains(t, v.View(), "settings service not available")
}

func TestView_LoadError(t *testing.T) {
	svc := &MockSettingsService{}
	svc.On("Get").Return(nil, fmt.Errorf("broken toml"))
	v := NewView(nil, svc)

	v.Update(v.Init()())

	assert.EqualError(t, v.err, "broken toml")
	assert.Contains(t, v.View(), "Loading settings...")
}

func TestView_ViewListsSettings(t *testing.T) {
	v := loadedView(t, &MockSettingsService{})

	view := v.View()

	assert.Contains(t, view, "Annotation directory:")
	assert.Contains(t, view, ".annotations")
	assert.Contains(t, view, "(one file per document)")
	assert.Contains(t, view, ".!?")
	assert.Contains(t, view, "Indent export JSON:")
	assert.Contains(t, view, "/home/u/.textannot/config.toml")
}

func TestView_Navigation(t *testing.T) {
	v := loadedView(t, &MockSettingsService{})

	press(v, tea.KeyMsg{Type: tea.KeyDown})
	press(v, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 2, v.selected)

	for range 10 {
		press(v, tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, len(items)-1, v.selected)

	press(v, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, len(items)-2, v.selected)
}

func TestView_ToggleFlag(t *testing.T) {
	svc := &MockSettingsService{}
	svc.On("Set", "export.indent", "false").Return(nil).Once()
	v := loadedView(t, svc)
	v.selected = 3

	cmd := press(v, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	saved, ok := cmd().(messages.SettingsSaved)
	require.True(t, ok)
	require.NoError(t, saved.Err)

	reload := press(v, saved)
	assert.NotNil(t, reload)
	assert.Contains(t, v.View(), "Saved export.indent")
	svc.AssertExpectations(t)
}

func TestView_EditString(t *testing.T) {
	svc := &MockSettingsService{}
	svc.On("Set", "store.dir", ".annotations/v2").Return(nil).Once()
	v := loadedView(t, svc)

	press(v, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, v.Editing())
	assert.Equal(t, ".annotations", v.input.Value())
	assert.Contains(t, v.View(), "[enter] save")

	press(v, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/v2")})
	cmd := press(v, tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, v.Editing())
	require.NotNil(t, cmd)
	saved := cmd().(messages.SettingsSaved)
	assert.NoError(t, saved.Err)
	svc.AssertExpectations(t)
}

func TestView_EditCancel(t *testing.T) {
	svc := &MockSettingsService{}
	v := loadedView(t, svc)

	press(v, tea.KeyMsg{Type: tea.KeyEnter})
	press(v, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	cmd := press(v, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Nil(t, cmd)
	assert.False(t, v.Editing())
	svc.AssertNotCalled(t, "Set", mock.Anything, mock.Anything)
}

func TestView_SetRejected(t *testing.T) {
	svc := &MockSettingsService{}
	svc.On("Set", "segmenter.terminators", "").
		Return(fmt.Errorf("%w: segmenter.terminators cannot be empty", domain.ErrInvalidInput))
	v := loadedView(t, svc)
	v.selected = 2

	press(v, tea.KeyMsg{Type: tea.KeyEnter})
	v.input.SetValue("")
	cmd := press(v, tea.KeyMsg{Type: tea.KeyEnter})
	v.Update(cmd())

	assert.ErrorIs(t, v.err, domain.ErrInvalidInput)
	assert.Contains(t, v.View(), "cannot be empty")
}

func TestView_EnterBeforeLoadIsIgnored(t *testing.T) {
	v := NewView(nil, &MockSettingsService{})

	cmd := press(v, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.False(t, v.Editing())
}

func TestView_EscGoesToMenu(t *testing.T) {
	v := loadedView(t, &MockSettingsService{})

	cmd := press(v, tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestView_Reset(t *testing.T) {
	v := loadedView(t, &MockSettingsService{})
	v.selected = 3
	v.notice = "Saved"
	v.editing = true

	v.Reset()

	assert.Equal(t, 0, v.selected)
	assert.Equal(t, "", v.notice)
	assert.False(t, v.Editing())
}
