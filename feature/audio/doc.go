// Package audio plays decoded audio buffers with a shared volume mix.
//
// A Mixer keeps one live voice per cache key. Playing a key again restarts its
// voice in place instead of creating a second one. Voices created with a
// position, a scene and a listener are positional: an invisible container node
// carries them in the scene and their gain falls off with the distance to the
// listener.
//
// # Volume
//
// The effective volume of a voice is the configured per-sound volume (0 counts
// as 1) times the master volume times the music or effects volume, depending
// on the sound's IsMusic flag. Changing any of the mixer volumes recomputes
// every cached voice at once.
//
// # Devices
//
//   - BeepDevice: plays through the system speaker using faiface/beep.
//   - NullDevice: keeps voice state without producing sound, for headless servers and tests.
//
// # HTTP Endpoints
//
//   - POST /audio/play : Plays a sound, optionally positional.
//   - POST /audio/stop/:cacheId : Stops a cached voice.
//   - PUT /audio/volume : Updates master, music and effects volumes.
//   - PUT /audio/config : Replaces the per-sound configuration.
//   - PUT /audio/listener : Moves the listener.
//   - GET /audio/cache/:cacheId : Describes a cached voice.
package audio
