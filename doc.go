// Package cinerec 是一个电影推荐引擎：把用户的历史交互（观看/评分/跳过）
// 与预计算的内容 Embedding 矩阵融合成一份排序、多样化、可解释的推荐列表。
//
// 架构分层（自底向上）：
//   - core/      领域层：交互记录、推荐结果、协作方接口、统一错误
//   - embedding/ Embedding 仓库：一次加载、只读共享的矩阵 + ID↔行号双向映射
//   - signal/    信号计算器：interest / discovery / collaborative / category
//     四路独立打分策略 + 自适应权重 + 线性融合
//   - rerank/    MMR 多样性重排：相关性与冗余度的贪心权衡
//   - engine/    编排器：冷启动、并发信号计算、候选过滤、结果解释
//   - filter/    候选过滤：CEL 表达式驱动的业务规则
//   - store/     基础设施层：内存 / Redis 实现的目录与交互存储
//   - feast/     Feast Feature Store 适配：在线特征形式的电影元数据
//   - config/    配置驱动：YAML 配置一键组装 Engine
//
// 引擎不生成、不更新 Embedding；矩阵由离线任务产出，进程生命周期内只读。
package cinerec
