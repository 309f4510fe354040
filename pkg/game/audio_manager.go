package game

import (
	"encoding/binary"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// SampleRate 音频上下文采样率
const SampleRate = 48000

// 内置音效 ID
const (
	SoundLampClick = "lamp_click"
	SoundZoom      = "zoom"
)

// AudioManager 音频管理器
// 职责：
//   - 统一管理场景中所有音效的播放
//   - 音效由程序合成（无外部音频文件），首次播放时创建播放器并缓存
//   - 提供音量控制
//
// context 为 nil 时所有播放请求静默失败（测试与无音频设备环境）。
type AudioManager struct {
	context      *audio.Context
	volume       float64
	clips        map[string][]byte        // 音效 ID -> 16 位立体声 PCM
	soundPlayers map[string]*audio.Player // 播放器缓存
}

// NewAudioManager 创建新的音频管理器，并注册内置音效
//
// 参数：
//   - ctx: ebiten 音频上下文（可为 nil）
//   - volume: 音效音量 (0.0 ~ 1.0)
func NewAudioManager(ctx *audio.Context, volume float64) *AudioManager {
	am := &AudioManager{
		context:      ctx,
		volume:       clampVolume(volume),
		clips:        make(map[string][]byte),
		soundPlayers: make(map[string]*audio.Player),
	}
	for id, clip := range DefaultClips() {
		am.Register(id, clip)
	}
	return am
}

// Register 注册（或替换）一个音效
func (am *AudioManager) Register(soundID string, pcm []byte) {
	am.clips[soundID] = pcm
	delete(am.soundPlayers, soundID)
}

// HasSound 音效是否已注册
func (am *AudioManager) HasSound(soundID string) bool {
	_, ok := am.clips[soundID]
	return ok
}

// PlaySound 播放音效（单次）
//
// 返回：
//   - bool: 是否成功播放
func (am *AudioManager) PlaySound(soundID string) bool {
	if am.context == nil || am.volume <= 0 {
		return false
	}

	player := am.getSoundPlayer(soundID)
	if player == nil {
		return false
	}

	player.SetVolume(am.volume)

	// 重置并播放
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind sound %s: %v", soundID, err)
	}
	player.Play()
	return true
}

// SetSoundVolume 设置音效音量，立即应用到已缓存的播放器
func (am *AudioManager) SetSoundVolume(volume float64) {
	am.volume = clampVolume(volume)
	for _, player := range am.soundPlayers {
		player.SetVolume(am.volume)
	}
}

// GetSoundVolume 获取当前音效音量
func (am *AudioManager) GetSoundVolume() float64 {
	return am.volume
}

// getSoundPlayer 获取或创建音效播放器
func (am *AudioManager) getSoundPlayer(soundID string) *audio.Player {
	if player, exists := am.soundPlayers[soundID]; exists {
		return player
	}

	clip, ok := am.clips[soundID]
	if !ok {
		log.Printf("[AudioManager] Warning: Sound not found: %s", soundID)
		return nil
	}

	player := am.context.NewPlayerFromBytes(clip)
	am.soundPlayers[soundID] = player
	return player
}

func clampVolume(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// DefaultClips 返回内置音效：台灯开关的短促"咔哒"，拉近镜头的低音提示
func DefaultClips() map[string][]byte {
	return map[string][]byte{
		SoundLampClick: ToneClip(SampleRate, 1800, 0.03, 0.5),
		SoundZoom:      ToneClip(SampleRate, 440, 0.15, 0.3),
	}
}

// ToneClip 合成一段带线性衰减包络的正弦波
// 输出格式与 ebiten 音频上下文一致：16 位有符号小端、双声道
func ToneClip(sampleRate int, freq, seconds, gain float64) []byte {
	n := int(float64(sampleRate) * seconds)
	buf := make([]byte, n*4)
	for i := 0; i < n; i++ {
		envelope := 1 - float64(i)/float64(n)
		v := gain * envelope * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))
		s := uint16(int16(v * math.MaxInt16))
		binary.LittleEndian.PutUint16(buf[i*4:], s)
		binary.LittleEndian.PutUint16(buf[i*4+2:], s)
	}
	return buf
}
