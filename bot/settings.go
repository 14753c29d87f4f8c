package bot

import "sync"

type chatSettings struct {
	Level string
	Model string
}

// settingsStore keeps the level and model picked in each chat
type settingsStore struct {
	defaults chatSettings
	chats    map[int64]chatSettings
	mutex    sync.RWMutex
}

func newSettingsStore(defaults chatSettings) *settingsStore {
	return &settingsStore{
		defaults: defaults,
		chats:    make(map[int64]chatSettings),
	}
}

func (s *settingsStore) Get(chatId int64) chatSettings {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if cs, ok := s.chats[chatId]; ok {
		return cs
	}
	return s.defaults
}

func (s *settingsStore) SetLevel(chatId int64, level string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	cs := s.getLocked(chatId)
	cs.Level = level
	s.chats[chatId] = cs
}

func (s *settingsStore) SetModel(chatId int64, model string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	cs := s.getLocked(chatId)
	cs.Model = model
	s.chats[chatId] = cs
}

func (s *settingsStore) Reset(chatId int64) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.chats, chatId)
}

func (s *settingsStore) getLocked(chatId int64) chatSettings {
	if cs, ok := s.chats[chatId]; ok {
		return cs
	}
	return s.defaults
}
