// Package game 实现单人挡板弹球的核心：球、挡板、碰撞、逐帧推进与主循环。
//
// 世界状态只由 Step 推进，Loop 负责在 Scheduler 的每帧回调中驱动它并输出绘图指令。
// 包内不含任何全局可变状态，也不涉及网络或终端。
package game
