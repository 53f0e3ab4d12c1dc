package server

import "bossarena/protocol"

// Policy 一类消息的转发范围
type Policy int

const (
	// RelayToOthers 转发给除发送者外的所有连接
	RelayToOthers Policy = iota
	// RelayToAll 转发给包括发送者在内的所有连接（权威结果类事件）
	RelayToAll
)

func (p Policy) String() string {
	if p == RelayToAll {
		return "all"
	}
	return "others"
}

var policies = [...]Policy{
	protocol.KindPositionUpdate:  RelayToOthers,
	protocol.KindPlayerJoined:    RelayToOthers,
	protocol.KindPlayerLeft:      RelayToOthers,
	protocol.KindPlayerShot:      RelayToOthers,
	protocol.KindBossShot:        RelayToAll,
	protocol.KindPlayerDamaged:   RelayToAll,
	protocol.KindBossDamaged:     RelayToAll,
	protocol.KindBossSpawned:     RelayToAll,
	protocol.KindBossDefeated:    RelayToAll,
	protocol.KindBossMultiShot:   RelayToAll,
	protocol.KindBossDashed:      RelayToAll,
	protocol.KindBossAreaAttack:  RelayToAll,
	protocol.KindBossShielded:    RelayToAll,
	protocol.KindPlayerRespawned: RelayToAll,
	protocol.KindPlayerFacing:    RelayToOthers,
	protocol.KindPlayerKilled:    RelayToAll,
}

// PolicyFor 返回某类消息的转发范围
func PolicyFor(k protocol.Kind) Policy {
	if int(k) < len(policies) {
		return policies[k]
	}
	return RelayToOthers
}
